package http

import (
	"clinic-booking/common"
	"clinic-booking/common/constant"
	"clinic-booking/common/contract"
	"clinic-booking/common/errs"
	"clinic-booking/common/otel"
	"clinic-booking/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// earlyCheckInWindow is how far before the slot start a check-in goes through
// without an explicit confirmation.
const earlyCheckInWindow = 5 * time.Minute

type ScheduleHttp struct {
	Schedules contract.ScheduleApi
	Cache     *redis.Client

	TimeNow func() time.Time

	followUpCacheTTL time.Duration
}

func RegisterScheduleHttp(
	staffMux *http.ServeMux,
	customerMux *http.ServeMux,
	cfg *viper.Viper,
	schedules contract.ScheduleApi,
	cache *redis.Client,
) *ScheduleHttp {
	in := &ScheduleHttp{
		Schedules: schedules,
		Cache:     cache,
		TimeNow:   time.Now,

		followUpCacheTTL: cfg.GetDuration("schedule.follow_up_cache_ttl"),
	}

	staffMux.HandleFunc("GET /api/clinic/schedules", in.listClinic)
	staffMux.HandleFunc("POST /api/clinic/schedules/{id}/check-in", in.checkIn)
	staffMux.HandleFunc("POST /api/clinic/schedules/{id}/complete", in.complete)
	staffMux.HandleFunc("POST /api/clinic/schedules/{id}/checkout", in.checkout)
	staffMux.HandleFunc("DELETE /api/clinic/schedules/{id}", in.cancel)

	customerMux.HandleFunc("GET /api/customer/schedules", in.listCustomer)

	return in
}

func (in *ScheduleHttp) listClinic(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "ScheduleHttp.listClinic")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	query := model.ClinicScheduleQuery{
		PageIndex:  queryInt(r, "pageIndex", 1),
		PageSize:   queryInt(r, "pageSize", 10),
		StartDate:  r.URL.Query().Get("startDate"),
		EndDate:    r.URL.Query().Get("endDate"),
		SortColumn: r.URL.Query().Get("sortColumn"),
		SortOrder:  r.URL.Query().Get("sortOrder"),
	}

	page, err := in.Schedules.GetClinicSchedules(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get clinic schedules", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	rows := make([]model.ClinicScheduleRow, 0, len(page.Items))
	for _, item := range page.Items {
		row := model.ClinicScheduleRow{CustomerSchedule: item}
		if item.Status == model.ScheduleStatusCompleted {
			row.FollowUp = in.followUpFor(ctx, item.Id)
		}
		rows = append(rows, row)
	}

	writeJSONResponse(w, http.StatusOK, model.ClinicSchedulePage{
		Items:      rows,
		PageIndex:  page.PageIndex,
		PageSize:   page.PageSize,
		TotalCount: page.TotalCount,
	})
}

// followUpFor resolves the follow-up availability for one completed schedule,
// read-through cached. A failure is isolated to the row: the list renders
// without the follow-up action rather than erroring out.
func (in *ScheduleHttp) followUpFor(ctx context.Context, scheduleId string) *model.FollowUpInfo {
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	cacheKey := fmt.Sprintf(constant.FollowUpStatusKey, scheduleId)

	value, err := in.Cache.Get(ctx, cacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.ErrorContext(ctx, "failed to read follow-up cache", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		}

		value, err = in.Schedules.GetNextScheduleAvailability(ctx, scheduleId)
		if err != nil {
			slog.WarnContext(ctx, "failed to get next schedule availability", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			return nil
		}

		if redisErr := in.Cache.SetEx(ctx, cacheKey, value, in.followUpCacheTTL).Err(); redisErr != nil {
			slog.ErrorContext(ctx, "failed to write follow-up cache", traceIdAttr, slog.Any(constant.LogFieldErr, redisErr))
		}
	}

	action := model.ClassifyFollowUp(value)
	return &model.FollowUpInfo{
		Status:           value,
		Action:           action,
		HideOverflowMenu: action == model.FollowUpActionViewNext,
	}
}

func (in *ScheduleHttp) listCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "ScheduleHttp.listCustomer")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	query := model.CustomerScheduleQuery{
		CustomerName:  r.URL.Query().Get("customerName"),
		CustomerPhone: r.URL.Query().Get("customerPhone"),
		PageIndex:     queryInt(r, "pageIndex", 1),
		PageSize:      queryInt(r, "pageSize", 10),
	}

	page, err := in.Schedules.GetCustomerSchedules(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get customer schedules", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, page)
}

func (in *ScheduleHttp) checkIn(w http.ResponseWriter, r *http.Request) {
	var req model.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ScheduleHttp.checkIn")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	scheduleId := r.PathValue("id")
	slog.InfoContext(ctx, "check-in receive request", slog.Any(constant.LogFieldPayload, scheduleId), traceIdAttr)

	schedule, err := in.Schedules.GetClinicSchedule(ctx, scheduleId)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get schedule", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if schedule.Status != model.ScheduleStatusPending {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Schedule is not pending"})
		return
	}

	now := in.TimeNow()
	if schedule.BookingDate != now.Format("2006-01-02") {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Check-in is only available on the booking date"})
		return
	}

	start, parseErr := time.ParseInLocation("2006-01-02 15:04", schedule.BookingDate+" "+schedule.StartTime, now.Location())
	if parseErr != nil {
		slog.WarnContext(ctx, "failed to parse schedule start time", traceIdAttr, slog.Any(constant.LogFieldErr, parseErr))
	} else if early := start.Sub(now); early > earlyCheckInWindow && !req.ConfirmedEarly {
		writeErrorResponse(w, &errs.HttpError{
			Code:    http.StatusConflict,
			Message: "Early check-in requires confirmation",
			Data:    model.CheckInEarlyResponse{MinutesEarly: int(early.Minutes())},
		})
		return
	}

	if err = in.Schedules.UpdateScheduleStatus(ctx, scheduleId, model.ScheduleStatusInProgress); err != nil {
		slog.ErrorContext(ctx, "failed to update schedule status", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	in.invalidateFollowUp(ctx, scheduleId)

	slog.InfoContext(ctx, "check-in success", traceIdAttr, slog.Any(constant.LogFieldResponse, scheduleId))

	writeJSONResponse(w, http.StatusOK, nil)
}

func (in *ScheduleHttp) complete(w http.ResponseWriter, r *http.Request) {
	var req model.CompleteScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ScheduleHttp.complete")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	scheduleId := r.PathValue("id")
	slog.InfoContext(ctx, "complete schedule receive request", slog.Any(constant.LogFieldPayload, scheduleId), traceIdAttr)

	schedule, err := in.Schedules.GetClinicSchedule(ctx, scheduleId)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get schedule", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if schedule.Status != model.ScheduleStatusInProgress {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Schedule is not in progress"})
		return
	}

	// First-visit sessions collect payment at the desk before the schedule
	// can complete. Later sessions in a treatment course are prepaid.
	if schedule.IsFirstCheckIn && !req.PaymentCaptured {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Payment must be captured before completion"})
		return
	}

	if err = in.Schedules.UpdateScheduleStatus(ctx, scheduleId, model.ScheduleStatusCompleted); err != nil {
		slog.ErrorContext(ctx, "failed to update schedule status", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	in.invalidateFollowUp(ctx, scheduleId)

	slog.InfoContext(ctx, "complete schedule success", traceIdAttr, slog.Any(constant.LogFieldResponse, scheduleId))

	writeJSONResponse(w, http.StatusOK, nil)
}

// checkout re-runs payment capture for a schedule that went uncompleted, on
// the booking date only.
func (in *ScheduleHttp) checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "ScheduleHttp.checkout")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	scheduleId := r.PathValue("id")
	slog.InfoContext(ctx, "checkout schedule receive request", slog.Any(constant.LogFieldPayload, scheduleId), traceIdAttr)

	schedule, err := in.Schedules.GetClinicSchedule(ctx, scheduleId)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get schedule", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if schedule.Status != model.ScheduleStatusUncompleted {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Schedule is not uncompleted"})
		return
	}

	if schedule.BookingDate != in.TimeNow().Format("2006-01-02") {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Checkout is only available on the booking date"})
		return
	}

	if err = in.Schedules.UpdateScheduleStatus(ctx, scheduleId, model.ScheduleStatusCompleted); err != nil {
		slog.ErrorContext(ctx, "failed to update schedule status", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	in.invalidateFollowUp(ctx, scheduleId)

	slog.InfoContext(ctx, "checkout schedule success", traceIdAttr, slog.Any(constant.LogFieldResponse, scheduleId))

	writeJSONResponse(w, http.StatusOK, nil)
}

func (in *ScheduleHttp) cancel(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotImplemented, Message: "Schedule cancellation is not supported"})
}

func (in *ScheduleHttp) invalidateFollowUp(ctx context.Context, scheduleId string) {
	err := in.Cache.Del(ctx, fmt.Sprintf(constant.FollowUpStatusKey, scheduleId)).Err()
	if err != nil {
		slog.ErrorContext(ctx, "failed to invalidate follow-up cache", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}
