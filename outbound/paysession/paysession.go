package paysession

import (
	"clinic-booking/common/constant"
	"clinic-booking/model"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"
)

var ErrAlreadyJoined = errors.New("payment session already joined for transaction")

// Unsubscriber releases one push subscription.
type Unsubscriber interface {
	Unsubscribe() error
}

// Subscriber abstracts the core NATS connection the payment gateway pushes
// status events through.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (Unsubscriber, error)
}

// NatsSubscriber adapts *nats.Conn to Subscriber.
type NatsSubscriber struct {
	Conn *nats.Conn
}

func (n NatsSubscriber) Subscribe(subject string, handler func(data []byte)) (Unsubscriber, error) {
	return n.Conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}

// Manager owns the per-transaction payment-status subscriptions. At most one
// subscription per transaction; delivery is single-shot, the subscription is
// released before the callback runs. Leave is idempotent and must be called
// on every path that exits the payment step.
type Manager struct {
	Subscriber Subscriber

	mu   sync.Mutex
	subs map[string]Unsubscriber
}

func NewManager(subscriber Subscriber) *Manager {
	return &Manager{
		Subscriber: subscriber,
		subs:       make(map[string]Unsubscriber),
	}
}

func (m *Manager) Join(transactionId string, onStatus func(isSuccess bool)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.subs[transactionId]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyJoined, transactionId)
	}

	subject := fmt.Sprintf(constant.PaymentStatusSubject, transactionId)
	sub, err := m.Subscriber.Subscribe(subject, func(data []byte) {
		var msg model.PaymentStatusMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("payment status push unmarshal error",
				slog.String("transaction_id", transactionId),
				slog.Any(constant.LogFieldErr, err),
			)
			return
		}

		m.Leave(transactionId)
		onStatus(msg.IsSuccess)
	})
	if err != nil {
		return err
	}

	m.subs[transactionId] = sub
	return nil
}

func (m *Manager) Leave(transactionId string) {
	m.mu.Lock()
	sub, ok := m.subs[transactionId]
	if ok {
		delete(m.subs, transactionId)
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	if err := sub.Unsubscribe(); err != nil {
		slog.Error("failed to unsubscribe payment session",
			slog.String("transaction_id", transactionId),
			slog.Any(constant.LogFieldErr, err),
		)
	}
}

func (m *Manager) Close() {
	m.mu.Lock()
	subs := m.subs
	m.subs = make(map[string]Unsubscriber)
	m.mu.Unlock()

	for transactionId, sub := range subs {
		if err := sub.Unsubscribe(); err != nil {
			slog.Error("failed to unsubscribe payment session",
				slog.String("transaction_id", transactionId),
				slog.Any(constant.LogFieldErr, err),
			)
		}
	}
}

// Active reports the number of outstanding joins.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.subs)
}
