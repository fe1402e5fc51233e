package paysession

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUnsubscriber struct {
	mu    sync.Mutex
	count int
}

func (f *fakeUnsubscriber) Unsubscribe() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	return nil
}

func (f *fakeUnsubscriber) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

type fakeSubscriber struct {
	mu       sync.Mutex
	subjects []string
	handlers map[string]func([]byte)
	unsubs   map[string]*fakeUnsubscriber
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{
		handlers: make(map[string]func([]byte)),
		unsubs:   make(map[string]*fakeUnsubscriber),
	}
}

func (f *fakeSubscriber) Subscribe(subject string, handler func(data []byte)) (Unsubscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.subjects = append(f.subjects, subject)
	f.handlers[subject] = handler

	unsub := &fakeUnsubscriber{}
	f.unsubs[subject] = unsub
	return unsub, nil
}

func (f *fakeSubscriber) push(subject string, data []byte) {
	f.mu.Lock()
	handler := f.handlers[subject]
	f.mu.Unlock()

	handler(data)
}

func TestManagerJoinIsExclusivePerTransaction(t *testing.T) {
	sub := newFakeSubscriber()
	m := NewManager(sub)

	err := m.Join("txn-1", func(bool) {})
	require.NoError(t, err)

	err = m.Join("txn-1", func(bool) {})
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	err = m.Join("txn-2", func(bool) {})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Active())
	assert.Equal(t, []string{"payments.status.txn-1", "payments.status.txn-2"}, sub.subjects)
}

func TestManagerLeaveIsIdempotent(t *testing.T) {
	sub := newFakeSubscriber()
	m := NewManager(sub)

	require.NoError(t, m.Join("txn-1", func(bool) {}))

	m.Leave("txn-1")
	m.Leave("txn-1")
	m.Leave("unknown")

	assert.Equal(t, 0, m.Active())
	assert.Equal(t, 1, sub.unsubs["payments.status.txn-1"].calls())
}

func TestManagerPushIsSingleShot(t *testing.T) {
	sub := newFakeSubscriber()
	m := NewManager(sub)

	var received []bool
	require.NoError(t, m.Join("txn-1", func(isSuccess bool) {
		received = append(received, isSuccess)
	}))

	sub.push("payments.status.txn-1", []byte(`{"is_success": true}`))

	assert.Equal(t, []bool{true}, received)
	assert.Equal(t, 0, m.Active(), "subscription released before callback runs")
	assert.Equal(t, 1, sub.unsubs["payments.status.txn-1"].calls())

	// re-join after resolution starts a fresh session
	require.NoError(t, m.Join("txn-1", func(bool) {}))
	assert.Equal(t, 1, m.Active())
}

func TestManagerMalformedPushKeepsSession(t *testing.T) {
	sub := newFakeSubscriber()
	m := NewManager(sub)

	called := false
	require.NoError(t, m.Join("txn-1", func(bool) { called = true }))

	sub.push("payments.status.txn-1", []byte(`{invalid`))

	assert.False(t, called)
	assert.Equal(t, 1, m.Active(), "session survives a bad payload")
}

func TestManagerCloseReleasesAll(t *testing.T) {
	sub := newFakeSubscriber()
	m := NewManager(sub)

	require.NoError(t, m.Join("txn-1", func(bool) {}))
	require.NoError(t, m.Join("txn-2", func(bool) {}))

	m.Close()

	assert.Equal(t, 0, m.Active())
	assert.Equal(t, 1, sub.unsubs["payments.status.txn-1"].calls())
	assert.Equal(t, 1, sub.unsubs["payments.status.txn-2"].calls())

	m.Close()
	assert.Equal(t, 1, sub.unsubs["payments.status.txn-1"].calls())
}
