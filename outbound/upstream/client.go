package upstream

import (
	"bytes"
	"clinic-booking/common"
	"clinic-booking/common/errs"
	"clinic-booking/common/otel"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Client is the shared plumbing for the platform's upstream HTTP services.
// Every call takes the inbound request context, so a cancelled request
// cancels its upstream calls too.
type Client struct {
	BaseUrl string
	ApiKey  string
	Http    *http.Client
}

func NewClient(baseUrl, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseUrl: baseUrl,
		ApiKey:  apiKey,
		Http: &http.Client{
			Timeout: timeout,
		},
	}
}

type upstreamErrorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.BaseUrl + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	if c.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.ApiKey)
	}

	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	ctx, span := otel.Tracer.Start(ctx, "upstream."+method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			common.UtilSpanError(span, err)
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		common.UtilSpanError(span, err)
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Http.Do(req)
	if err != nil {
		common.UtilSpanError(span, err)
		return &errs.HttpError{Code: http.StatusBadGateway, Message: "Upstream unavailable"}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = c.errorFromResponse(resp)
		common.UtilSpanError(span, err)
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		common.UtilSpanError(span, err)
		return fmt.Errorf("decode upstream response: %w", err)
	}

	return nil
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	var body upstreamErrorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)

	message := body.Detail
	if message == "" {
		message = body.Error
	}
	if message == "" {
		message = "Upstream request failed"
	}

	return &errs.HttpError{Code: resp.StatusCode, Message: message}
}
