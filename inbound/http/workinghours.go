package http

import (
	"clinic-booking/common"
	"clinic-booking/common/constant"
	"clinic-booking/common/contract"
	"clinic-booking/common/errs"
	"clinic-booking/common/otel"
	"clinic-booking/model"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type WorkingHoursHttp struct {
	Schedules contract.ScheduleApi
	Validate  *validator.Validate
}

func RegisterWorkingHoursHttp(mux *http.ServeMux, schedules contract.ScheduleApi, validate *validator.Validate) *WorkingHoursHttp {
	in := &WorkingHoursHttp{
		Schedules: schedules,
		Validate:  validate,
	}

	mux.HandleFunc("POST /api/clinic/working-hours", in.create)
	mux.HandleFunc("POST /api/clinic/working-hours/redistribute", in.redistribute)

	return in
}

func (in *WorkingHoursHttp) create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateWorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "WorkingHoursHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create working hours receive request", slog.Any(constant.LogFieldPayload, len(req.WorkingDates)), traceIdAttr)

	// The day total is derived, never trusted from the client.
	for i := range req.WorkingDates {
		req.WorkingDates[i].RecomputeCapacity()
	}

	rows, refs := model.FlattenWorkingDates(req.WorkingDates, req.ShiftGroupId)

	if fieldErrs := missingTimeErrors(rows, refs); len(fieldErrs) > 0 {
		writeJSONResponse(w, http.StatusBadRequest, model.WorkingHoursErrorResponse{
			Error:       "Validation failed",
			FieldErrors: fieldErrs,
		})
		return
	}

	if err := in.Schedules.CreateClinicSchedules(ctx, rows); err != nil {
		var validationErr *model.WorkingDateValidationError
		if errors.As(err, &validationErr) {
			fieldErrs, banners := model.MapWorkingDateErrors(refs, validationErr.Errors)

			message := "Validation failed"
			if len(banners) > 0 {
				message = strings.Join(banners, "; ")
			}

			slog.InfoContext(ctx, "working hours rejected by scheduling service", traceIdAttr, slog.Any(constant.LogFieldResponse, validationErr.Errors))
			writeJSONResponse(w, http.StatusUnprocessableEntity, model.WorkingHoursErrorResponse{
				Error:       message,
				FieldErrors: fieldErrs,
			})
			return
		}

		slog.ErrorContext(ctx, "failed to create clinic schedules", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "create working hours success", traceIdAttr, slog.Any(constant.LogFieldResponse, len(rows)))

	writeJSONResponse(w, http.StatusOK, model.CreateWorkingHoursResponse{
		Created:  len(rows),
		Warnings: model.SlotAdvisories(req.WorkingDates),
	})
}

type redistributeRequest struct {
	Day      model.WorkingDay `json:"day"`
	Capacity int              `json:"capacity" validate:"gt=0"`
}

// redistribute previews how a new day total spreads across existing slots.
// Pure calculation for the working-hours editor, nothing is persisted.
func (in *WorkingHoursHttp) redistribute(w http.ResponseWriter, r *http.Request) {
	var req redistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	req.Day.RedistributeCapacity(req.Capacity)

	writeJSONResponse(w, http.StatusOK, req.Day)
}

// missingTimeErrors catches empty slot times before the batch leaves the
// service, pointing at the exact slot the same way the positional 422
// mapping does.
func missingTimeErrors(rows []model.WorkingDateRow, refs []model.RowRef) []model.FieldError {
	var fieldErrs []model.FieldError

	for i, row := range rows {
		if strings.TrimSpace(row.StartTime) == "" {
			fieldErrs = append(fieldErrs, model.FieldError{
				Date: refs[i].Date, SlotIndex: refs[i].SlotIndex, Field: "start_time",
				Message: "start time is required",
			})
		}

		if strings.TrimSpace(row.EndTime) == "" {
			fieldErrs = append(fieldErrs, model.FieldError{
				Date: refs[i].Date, SlotIndex: refs[i].SlotIndex, Field: "end_time",
				Message: "end time is required",
			})
		}
	}

	return fieldErrs
}
