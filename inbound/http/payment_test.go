package http

import (
	"clinic-booking/common/constant"
	"clinic-booking/common/contract/mocks"
	jetstreamMock "clinic-booking/common/jetstream/mocks"
	"clinic-booking/model"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHttpTestSuite struct {
	suite.Suite

	Validate  *validator.Validate
	Publisher *jetstreamMock.MockPublisher
	Sessions  *mocks.MockPaymentSession
}

func (s *PaymentHttpTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	s.Validate = validator.New()
	s.Publisher = jetstreamMock.NewMockPublisher(ctrl)
	s.Sessions = mocks.NewMockPaymentSession(ctrl)

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func TestPaymentHttpTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentHttpTestSuite))
}

func (s *PaymentHttpTestSuite) TestCallback() {
	tests := []struct {
		name           string
		reqBody        string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "invalid json",
			reqBody:        `{invalid json`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request"}`,
		},
		{
			name:           "validation error - missing fields",
			reqBody:        `{}`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation failed","data":{"Success":"required","TransactionId":"required"}}`,
		},
		{
			name:    "publish message error",
			reqBody: `{"transaction_id": "txn-1", "success": true}`,
			setupMock: func() {
				s.Publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectResolveDeposit,
					gomock.Any(),
				).Return(nil, fmt.Errorf("publish error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name:    "success maps to completed",
			reqBody: `{"transaction_id": "txn-1", "success": true}`,
			setupMock: func() {
				s.Publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectResolveDeposit,
					gomock.Any(),
				).DoAndReturn(func(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
					var msg model.ResolveDepositEventMessage
					s.NoError(json.Unmarshal(data, &msg))
					s.Equal("txn-1", msg.TransactionId)
					s.Equal(model.DepositStatusCompleted, msg.Status)
					return nil, nil
				})
				s.Sessions.EXPECT().Leave("txn-1")
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "failure maps to failed",
			reqBody: `{"transaction_id": "txn-1", "success": false}`,
			setupMock: func() {
				s.Publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectResolveDeposit,
					gomock.Any(),
				).DoAndReturn(func(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
					var msg model.ResolveDepositEventMessage
					s.NoError(json.Unmarshal(data, &msg))
					s.Equal(model.DepositStatusFailed, msg.Status)
					return nil, nil
				})
				s.Sessions.EXPECT().Leave("txn-1")
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			paymentHttp := RegisterPaymentHttp(
				http.NewServeMux(),
				s.Publisher,
				s.Sessions,
				s.Validate,
			)

			tc.setupMock()

			req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", strings.NewReader(tc.reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			paymentHttp.callback(w, req)

			s.Equal(tc.expectedStatus, w.Code)

			if tc.expectedBody != "" {
				actual := strings.TrimSpace(w.Body.String())
				s.Equal(tc.expectedBody, actual)
			} else {
				s.Empty(w.Body.String())
			}
		})
	}
}
