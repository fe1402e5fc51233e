package http

import (
	"clinic-booking/common/constant"
	"clinic-booking/common/contract/mocks"
	"clinic-booking/model"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScheduleHttpTestSuite struct {
	suite.Suite

	Cfg *viper.Viper

	Cache     *redis.Client
	CacheMock redismock.ClientMock

	Schedules *mocks.MockScheduleApi
}

func (s *ScheduleHttpTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	rdb, mock := redismock.NewClientMock()
	s.Cache = rdb
	s.CacheMock = mock

	s.Schedules = mocks.NewMockScheduleApi(ctrl)

	s.Cfg = viper.New()
	s.Cfg.Set("schedule.follow_up_cache_ttl", "10m")

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *ScheduleHttpTestSuite) TearDownTest() {
	if err := s.Cache.Close(); err != nil {
		s.T().Fatalf("failed to close redis mock: %v", err)
	}
}

func TestScheduleHttpTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleHttpTestSuite))
}

func (s *ScheduleHttpTestSuite) newScheduleHttp() *ScheduleHttp {
	return RegisterScheduleHttp(http.NewServeMux(), http.NewServeMux(), s.Cfg, s.Schedules, s.Cache)
}

func (s *ScheduleHttpTestSuite) TestListClinic() {
	followUpKey := fmt.Sprintf(constant.FollowUpStatusKey, "sch-1")

	page := model.SchedulePage{
		Items: []model.CustomerSchedule{
			{Id: "sch-1", CustomerName: "Ngọc Anh", Status: model.ScheduleStatusCompleted},
			{Id: "sch-2", CustomerName: "Minh Châu", Status: model.ScheduleStatusPending},
		},
		PageIndex:  1,
		PageSize:   10,
		TotalCount: 2,
	}

	tests := []struct {
		name             string
		setupMock        func()
		expectedAction   model.FollowUpAction
		expectedFollowUp bool
	}{
		{
			name: "cache miss resolves and caches availability",
			setupMock: func() {
				s.Schedules.EXPECT().GetClinicSchedules(gomock.Any(), gomock.Any()).Return(page, nil)
				s.CacheMock.ExpectGet(followUpKey).RedisNil()
				s.Schedules.EXPECT().GetNextScheduleAvailability(gomock.Any(), "sch-1").
					Return(model.FollowUpNeedSchedule, nil)
				s.CacheMock.ExpectSetEx(followUpKey, model.FollowUpNeedSchedule, 10*time.Minute).SetVal("OK")
			},
			expectedAction:   model.FollowUpActionSchedule,
			expectedFollowUp: true,
		},
		{
			name: "cache hit skips availability call",
			setupMock: func() {
				s.Schedules.EXPECT().GetClinicSchedules(gomock.Any(), gomock.Any()).Return(page, nil)
				s.CacheMock.ExpectGet(followUpKey).SetVal(model.FollowUpAlreadyScheduled)
			},
			expectedAction:   model.FollowUpActionViewNext,
			expectedFollowUp: true,
		},
		{
			name: "availability failure only drops the row follow-up",
			setupMock: func() {
				s.Schedules.EXPECT().GetClinicSchedules(gomock.Any(), gomock.Any()).Return(page, nil)
				s.CacheMock.ExpectGet(followUpKey).RedisNil()
				s.Schedules.EXPECT().GetNextScheduleAvailability(gomock.Any(), "sch-1").
					Return("", fmt.Errorf("availability error"))
			},
			expectedFollowUp: false,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			scheduleHttp := s.newScheduleHttp()

			tc.setupMock()

			w := httptest.NewRecorder()
			scheduleHttp.listClinic(w, httptest.NewRequest(http.MethodGet, "/api/clinic/schedules?pageIndex=1&pageSize=10", nil))

			s.Equal(http.StatusOK, w.Code)

			var resp model.ClinicSchedulePage
			s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			s.Len(resp.Items, 2)

			if tc.expectedFollowUp {
				s.Require().NotNil(resp.Items[0].FollowUp)
				s.Equal(tc.expectedAction, resp.Items[0].FollowUp.Action)
				s.Equal(tc.expectedAction == model.FollowUpActionViewNext, resp.Items[0].FollowUp.HideOverflowMenu)
			} else {
				s.Nil(resp.Items[0].FollowUp)
			}

			// Non-completed rows never trigger an availability lookup.
			s.Nil(resp.Items[1].FollowUp)

			s.NoError(s.CacheMock.ExpectationsWereMet())
		})
	}
}

func (s *ScheduleHttpTestSuite) TestCheckIn() {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	followUpKey := fmt.Sprintf(constant.FollowUpStatusKey, "sch-1")

	schedule := func(status model.ScheduleStatus, bookingDate, startTime string) model.CustomerSchedule {
		return model.CustomerSchedule{Id: "sch-1", Status: status, BookingDate: bookingDate, StartTime: startTime}
	}

	tests := []struct {
		name           string
		reqBody        string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "not pending",
			reqBody: `{}`,
			setupMock: func() {
				s.Schedules.EXPECT().GetClinicSchedule(gomock.Any(), "sch-1").
					Return(schedule(model.ScheduleStatusCompleted, "2026-03-01", "09:00"), nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Schedule is not pending"}`,
		},
		{
			name:    "wrong booking date",
			reqBody: `{}`,
			setupMock: func() {
				s.Schedules.EXPECT().GetClinicSchedule(gomock.Any(), "sch-1").
					Return(schedule(model.ScheduleStatusPending, "2026-03-02", "09:00"), nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Check-in is only available on the booking date"}`,
		},
		{
			name:    "early without confirmation",
			reqBody: `{}`,
			setupMock: func() {
				s.Schedules.EXPECT().GetClinicSchedule(gomock.Any(), "sch-1").
					Return(schedule(model.ScheduleStatusPending, "2026-03-01", "09:10"), nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Early check-in requires confirmation","data":{"minutes_early":10}}`,
		},
		{
			name:    "early with confirmation",
			reqBody: `{"confirmed_early": true}`,
			setupMock: func() {
				s.Schedules.EXPECT().GetClinicSchedule(gomock.Any(), "sch-1").
					Return(schedule(model.ScheduleStatusPending, "2026-03-01", "09:10"), nil)
				s.Schedules.EXPECT().UpdateScheduleStatus(gomock.Any(), "sch-1", model.ScheduleStatusInProgress).
					Return(nil)
				s.CacheMock.ExpectDel(followUpKey).SetVal(1)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "exactly at the early window",
			reqBody: `{}`,
			setupMock: func() {
				s.Schedules.EXPECT().GetClinicSchedule(gomock.Any(), "sch-1").
					Return(schedule(model.ScheduleStatusPending, "2026-03-01", "09:05"), nil)
				s.Schedules.EXPECT().UpdateScheduleStatus(gomock.Any(), "sch-1", model.ScheduleStatusInProgress).
					Return(nil)
				s.CacheMock.ExpectDel(followUpKey).SetVal(1)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "on time",
			reqBody: `{}`,
			setupMock: func() {
				s.Schedules.EXPECT().GetClinicSchedule(gomock.Any(), "sch-1").
					Return(schedule(model.ScheduleStatusPending, "2026-03-01", "08:30"), nil)
				s.Schedules.EXPECT().UpdateScheduleStatus(gomock.Any(), "sch-1", model.ScheduleStatusInProgress).
					Return(nil)
				s.CacheMock.ExpectDel(followUpKey).SetVal(1)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			scheduleHttp := s.newScheduleHttp()
			scheduleHttp.TimeNow = func() time.Time { return now }

			tc.setupMock()

			req := httptest.NewRequest(http.MethodPost, "/api/clinic/schedules/sch-1/check-in", strings.NewReader(tc.reqBody))
			req.SetPathValue("id", "sch-1")
			w := httptest.NewRecorder()

			scheduleHttp.checkIn(w, req)

			s.Equal(tc.expectedStatus, w.Code)
			if tc.expectedBody != "" {
				s.Equal(tc.expectedBody, strings.TrimSpace(w.Body.String()))
			}

			s.NoError(s.CacheMock.ExpectationsWereMet())
		})
	}
}

func (s *ScheduleHttpTestSuite) TestComplete() {
	followUpKey := fmt.Sprintf(constant.FollowUpStatusKey, "sch-1")

	tests := []struct {
		name           string
		reqBody        string
		schedule       model.CustomerSchedule
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "not in progress",
			reqBody:        `{}`,
			schedule:       model.CustomerSchedule{Id: "sch-1", Status: model.ScheduleStatusPending},
			setupMock:      func() {},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Schedule is not in progress"}`,
		},
		{
			name:           "first visit without payment",
			reqBody:        `{}`,
			schedule:       model.CustomerSchedule{Id: "sch-1", Status: model.ScheduleStatusInProgress, IsFirstCheckIn: true},
			setupMock:      func() {},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Payment must be captured before completion"}`,
		},
		{
			name:     "first visit with payment",
			reqBody:  `{"payment_captured": true}`,
			schedule: model.CustomerSchedule{Id: "sch-1", Status: model.ScheduleStatusInProgress, IsFirstCheckIn: true},
			setupMock: func() {
				s.Schedules.EXPECT().UpdateScheduleStatus(gomock.Any(), "sch-1", model.ScheduleStatusCompleted).
					Return(nil)
				s.CacheMock.ExpectDel(followUpKey).SetVal(1)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "prepaid later visit",
			reqBody:  `{}`,
			schedule: model.CustomerSchedule{Id: "sch-1", Status: model.ScheduleStatusInProgress},
			setupMock: func() {
				s.Schedules.EXPECT().UpdateScheduleStatus(gomock.Any(), "sch-1", model.ScheduleStatusCompleted).
					Return(nil)
				s.CacheMock.ExpectDel(followUpKey).SetVal(1)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			scheduleHttp := s.newScheduleHttp()

			s.Schedules.EXPECT().GetClinicSchedule(gomock.Any(), "sch-1").Return(tc.schedule, nil)
			tc.setupMock()

			req := httptest.NewRequest(http.MethodPost, "/api/clinic/schedules/sch-1/complete", strings.NewReader(tc.reqBody))
			req.SetPathValue("id", "sch-1")
			w := httptest.NewRecorder()

			scheduleHttp.complete(w, req)

			s.Equal(tc.expectedStatus, w.Code)
			if tc.expectedBody != "" {
				s.Equal(tc.expectedBody, strings.TrimSpace(w.Body.String()))
			}

			s.NoError(s.CacheMock.ExpectationsWereMet())
		})
	}
}

func (s *ScheduleHttpTestSuite) TestCheckout() {
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	followUpKey := fmt.Sprintf(constant.FollowUpStatusKey, "sch-1")

	tests := []struct {
		name           string
		schedule       model.CustomerSchedule
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "not uncompleted",
			schedule:       model.CustomerSchedule{Id: "sch-1", Status: model.ScheduleStatusCompleted, BookingDate: "2026-03-01"},
			setupMock:      func() {},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Schedule is not uncompleted"}`,
		},
		{
			name:           "wrong day",
			schedule:       model.CustomerSchedule{Id: "sch-1", Status: model.ScheduleStatusUncompleted, BookingDate: "2026-02-28"},
			setupMock:      func() {},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Checkout is only available on the booking date"}`,
		},
		{
			name:     "success",
			schedule: model.CustomerSchedule{Id: "sch-1", Status: model.ScheduleStatusUncompleted, BookingDate: "2026-03-01"},
			setupMock: func() {
				s.Schedules.EXPECT().UpdateScheduleStatus(gomock.Any(), "sch-1", model.ScheduleStatusCompleted).
					Return(nil)
				s.CacheMock.ExpectDel(followUpKey).SetVal(1)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			scheduleHttp := s.newScheduleHttp()
			scheduleHttp.TimeNow = func() time.Time { return now }

			s.Schedules.EXPECT().GetClinicSchedule(gomock.Any(), "sch-1").Return(tc.schedule, nil)
			tc.setupMock()

			req := httptest.NewRequest(http.MethodPost, "/api/clinic/schedules/sch-1/checkout", nil)
			req.SetPathValue("id", "sch-1")
			w := httptest.NewRecorder()

			scheduleHttp.checkout(w, req)

			s.Equal(tc.expectedStatus, w.Code)
			if tc.expectedBody != "" {
				s.Equal(tc.expectedBody, strings.TrimSpace(w.Body.String()))
			}

			s.NoError(s.CacheMock.ExpectationsWereMet())
		})
	}
}

func (s *ScheduleHttpTestSuite) TestCancelNotSupported() {
	scheduleHttp := s.newScheduleHttp()

	req := httptest.NewRequest(http.MethodDelete, "/api/clinic/schedules/sch-1", nil)
	req.SetPathValue("id", "sch-1")
	w := httptest.NewRecorder()

	scheduleHttp.cancel(w, req)

	s.Equal(http.StatusNotImplemented, w.Code)
	s.Equal(`{"error":"Schedule cancellation is not supported"}`, strings.TrimSpace(w.Body.String()))
}
