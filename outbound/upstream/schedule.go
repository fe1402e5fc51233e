package upstream

import (
	"bytes"
	"clinic-booking/common"
	"clinic-booking/common/errs"
	"clinic-booking/common/otel"
	"clinic-booking/model"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/trace"
)

// ScheduleClient talks to the scheduling service.
type ScheduleClient struct {
	*Client
}

func NewScheduleClient(client *Client) *ScheduleClient {
	return &ScheduleClient{Client: client}
}

func (c *ScheduleClient) GetClinicSchedules(ctx context.Context, query model.ClinicScheduleQuery) (model.SchedulePage, error) {
	q := url.Values{}
	q.Set("pageIndex", strconv.Itoa(query.PageIndex))
	q.Set("pageSize", strconv.Itoa(query.PageSize))
	if query.StartDate != "" {
		q.Set("startDate", query.StartDate)
	}
	if query.EndDate != "" {
		q.Set("endDate", query.EndDate)
	}
	if query.SortColumn != "" {
		q.Set("sortColumn", query.SortColumn)
		q.Set("sortOrder", query.SortOrder)
	}

	var page model.SchedulePage
	err := c.doJSON(ctx, http.MethodGet, "/api/clinic-schedules", q, nil, &page)
	return page, err
}

func (c *ScheduleClient) GetCustomerSchedules(ctx context.Context, query model.CustomerScheduleQuery) (model.SchedulePage, error) {
	q := url.Values{}
	q.Set("pageIndex", strconv.Itoa(query.PageIndex))
	q.Set("pageSize", strconv.Itoa(query.PageSize))
	if query.CustomerName != "" {
		q.Set("customerName", query.CustomerName)
	}
	if query.CustomerPhone != "" {
		q.Set("customerPhone", query.CustomerPhone)
	}

	var page model.SchedulePage
	err := c.doJSON(ctx, http.MethodGet, "/api/customer-schedules", q, nil, &page)
	return page, err
}

func (c *ScheduleClient) GetClinicSchedule(ctx context.Context, scheduleId string) (model.CustomerSchedule, error) {
	var schedule model.CustomerSchedule
	err := c.doJSON(ctx, http.MethodGet, "/api/clinic-schedules/"+scheduleId, nil, nil, &schedule)
	return schedule, err
}

type updateScheduleStatusRequest struct {
	Status model.ScheduleStatus `json:"status"`
}

func (c *ScheduleClient) UpdateScheduleStatus(ctx context.Context, scheduleId string, status model.ScheduleStatus) error {
	return c.doJSON(ctx, http.MethodPut, "/api/clinic-schedules/"+scheduleId+"/status", nil, updateScheduleStatusRequest{Status: status}, nil)
}

type nextAvailabilityResponse struct {
	IsSuccess bool   `json:"is_success"`
	Value     string `json:"value"`
}

func (c *ScheduleClient) GetNextScheduleAvailability(ctx context.Context, scheduleId string) (string, error) {
	var resp nextAvailabilityResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/customer-schedules/"+scheduleId+"/next-availability", nil, nil, &resp)
	if err != nil {
		return "", err
	}

	return resp.Value, nil
}

type createClinicSchedulesRequest struct {
	WorkingDates []model.WorkingDateRow `json:"working_dates"`
}

type createClinicSchedulesErrorBody struct {
	Errors []model.CodeMessage `json:"errors"`
	Detail string              `json:"detail"`
}

// CreateClinicSchedules submits the flattened rows in one call. A 422 comes
// back as *model.WorkingDateValidationError carrying the positional codes;
// any other failure is a plain HttpError.
func (c *ScheduleClient) CreateClinicSchedules(ctx context.Context, rows []model.WorkingDateRow) error {
	ctx, span := otel.Tracer.Start(ctx, "upstream.CreateClinicSchedules", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	data, err := json.Marshal(createClinicSchedulesRequest{WorkingDates: rows})
	if err != nil {
		common.UtilSpanError(span, err)
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/clinic-schedules", nil, bytes.NewReader(data))
	if err != nil {
		common.UtilSpanError(span, err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Http.Do(req)
	if err != nil {
		common.UtilSpanError(span, err)
		return &errs.HttpError{Code: http.StatusBadGateway, Message: "Upstream unavailable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		var body createClinicSchedulesErrorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr == nil && len(body.Errors) > 0 {
			err = &model.WorkingDateValidationError{Errors: body.Errors}
			common.UtilSpanError(span, err)
			return err
		}

		err = &errs.HttpError{Code: http.StatusUnprocessableEntity, Message: "Working dates rejected"}
		common.UtilSpanError(span, err)
		return err
	}

	err = c.errorFromResponse(resp)
	common.UtilSpanError(span, err)
	return err
}
