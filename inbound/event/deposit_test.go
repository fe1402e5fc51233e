package event

import (
	"clinic-booking/common/constant"
	jetstreamMock "clinic-booking/common/jetstream/mocks"
	"clinic-booking/model"
	"clinic-booking/outbound/depositstore"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type DepositEventTestSuite struct {
	suite.Suite

	Store   *depositstore.Store
	PgxMock pgxmock.PgxPoolIface

	Cache     *redis.Client
	CacheMock redismock.ClientMock

	Publisher *jetstreamMock.MockPublisher
}

func (s *DepositEventTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.Store = depositstore.New(pool)

	rdb, mock := redismock.NewClientMock()
	s.Cache = rdb
	s.CacheMock = mock

	s.Publisher = jetstreamMock.NewMockPublisher(ctrl)

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *DepositEventTestSuite) TearDownTest() {
	s.PgxMock.Close()

	if err := s.Cache.Close(); err != nil {
		s.T().Fatalf("failed to close redis mock: %v", err)
	}
}

func TestDepositEventTestSuite(t *testing.T) {
	suite.Run(t, new(DepositEventTestSuite))
}

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func (s *DepositEventTestSuite) newDepositEvent() DepositEvent {
	return DepositEvent{
		Store:                s.Store,
		Cache:                s.Cache,
		Publisher:            s.Publisher,
		VndCurrencyFormatter: message.NewPrinter(language.Vietnamese),
		TimeNow:              func() time.Time { return fixedNow },
		Timeout:              5 * time.Second,
	}
}

func (s *DepositEventTestSuite) resolvedSessionRows(status string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "external_id", "customer_id", "customer_email", "transaction_id", "amount", "qr_url", "bank_number", "status", "expired_at"}).
		AddRow(int32(1), "dep-1", "cust-1", "john@example.com", "txn-1", int64(215000), "", "", status, pgtype.Timestamp{Time: fixedNow.Add(10 * time.Minute), Valid: true})
}

func (s *DepositEventTestSuite) TestResolveHandler() {
	balanceKey := fmt.Sprintf(constant.CustomerBalanceKey, "cust-1")

	resolveArgs := func(status string) *pgxmock.ExpectedQuery {
		return s.PgxMock.ExpectQuery("UPDATE deposit_sessions").
			WithArgs("txn-1", status, pgtype.Timestamp{Time: fixedNow, Valid: true})
	}

	tests := []struct {
		name      string
		msg       string
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "malformed message is dropped",
			msg:       `{invalid`,
			setupMock: func() {},
			wantErr:   false,
		},
		{
			name:      "non-terminal status is dropped",
			msg:       `{"transaction_id": "txn-1", "status": "pending"}`,
			setupMock: func() {},
			wantErr:   false,
		},
		{
			name: "completed credits balance and emails receipt",
			msg:  `{"transaction_id": "txn-1", "status": "completed"}`,
			setupMock: func() {
				resolveArgs("completed").WillReturnRows(s.resolvedSessionRows("completed"))
				s.CacheMock.ExpectExists(balanceKey).SetVal(1)
				s.CacheMock.ExpectIncrBy(balanceKey, 215000).SetVal(315000)
				s.Publisher.EXPECT().Publish(gomock.Any(), constant.SubjectSendEmail, gomock.Any()).
					DoAndReturn(func(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
						var email model.SendEmailEventMessage
						s.NoError(json.Unmarshal(data, &email))
						s.Equal("john@example.com", email.To)
						s.Contains(email.Body, "Hai trăm mười lăm nghìn đồng")
						return nil, nil
					})
			},
			wantErr: false,
		},
		{
			name: "duplicate signal is a no-op",
			msg:  `{"transaction_id": "txn-1", "status": "completed"}`,
			setupMock: func() {
				resolveArgs("completed").WillReturnError(pgx.ErrNoRows)
			},
			wantErr: false,
		},
		{
			name: "failed resolves without credit or email",
			msg:  `{"transaction_id": "txn-1", "status": "failed"}`,
			setupMock: func() {
				resolveArgs("failed").WillReturnRows(s.resolvedSessionRows("failed"))
			},
			wantErr: false,
		},
		{
			name: "expired resolves without credit or email",
			msg:  `{"transaction_id": "txn-1", "status": "expired"}`,
			setupMock: func() {
				resolveArgs("expired").WillReturnRows(s.resolvedSessionRows("expired"))
			},
			wantErr: false,
		},
		{
			name: "cold balance cache skips the credit",
			msg:  `{"transaction_id": "txn-1", "status": "completed"}`,
			setupMock: func() {
				resolveArgs("completed").WillReturnRows(s.resolvedSessionRows("completed"))
				s.CacheMock.ExpectExists(balanceKey).SetVal(0)
				s.Publisher.EXPECT().Publish(gomock.Any(), constant.SubjectSendEmail, gomock.Any()).
					Return(nil, nil)
			},
			wantErr: false,
		},
		{
			name: "database error is retried",
			msg:  `{"transaction_id": "txn-1", "status": "completed"}`,
			setupMock: func() {
				resolveArgs("completed").WillReturnError(fmt.Errorf("database error"))
			},
			wantErr: true,
		},
		{
			name: "email publish error is retried",
			msg:  `{"transaction_id": "txn-1", "status": "completed"}`,
			setupMock: func() {
				resolveArgs("completed").WillReturnRows(s.resolvedSessionRows("completed"))
				s.CacheMock.ExpectExists(balanceKey).SetVal(1)
				s.CacheMock.ExpectIncrBy(balanceKey, 215000).SetVal(315000)
				s.Publisher.EXPECT().Publish(gomock.Any(), constant.SubjectSendEmail, gomock.Any()).
					Return(nil, fmt.Errorf("publish error"))
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			depositEvent := s.newDepositEvent()

			tc.setupMock()

			err := depositEvent.ResolveHandler(context.Background(), []byte(tc.msg))

			if tc.wantErr {
				s.Error(err)
			} else {
				s.NoError(err)
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
			s.NoError(s.CacheMock.ExpectationsWereMet())
		})
	}
}

// TestResolveHandlerRace replays the same terminal signal from two different
// paths (manual check and push event). The first applies the transition, the
// second sees no pending row and must not credit or email again.
func (s *DepositEventTestSuite) TestResolveHandlerRace() {
	balanceKey := fmt.Sprintf(constant.CustomerBalanceKey, "cust-1")
	msg := []byte(`{"transaction_id": "txn-1", "status": "completed"}`)

	depositEvent := s.newDepositEvent()

	s.PgxMock.ExpectQuery("UPDATE deposit_sessions").
		WithArgs("txn-1", "completed", pgtype.Timestamp{Time: fixedNow, Valid: true}).
		WillReturnRows(s.resolvedSessionRows("completed"))
	s.CacheMock.ExpectExists(balanceKey).SetVal(1)
	s.CacheMock.ExpectIncrBy(balanceKey, 215000).SetVal(315000)
	s.Publisher.EXPECT().Publish(gomock.Any(), constant.SubjectSendEmail, gomock.Any()).Return(nil, nil)

	s.NoError(depositEvent.ResolveHandler(context.Background(), msg))

	s.PgxMock.ExpectQuery("UPDATE deposit_sessions").
		WithArgs("txn-1", "completed", pgtype.Timestamp{Time: fixedNow, Valid: true}).
		WillReturnError(pgx.ErrNoRows)

	s.NoError(depositEvent.ResolveHandler(context.Background(), msg))

	s.NoError(s.PgxMock.ExpectationsWereMet())
	s.NoError(s.CacheMock.ExpectationsWereMet())
}
