package upstream

import (
	"bytes"
	"clinic-booking/common"
	"clinic-booking/common/errs"
	"clinic-booking/common/otel"
	"clinic-booking/model"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// ClinicClient talks to the clinic registry. Profile submissions go through
// as multipart, field names preserved, files forwarded verbatim.
type ClinicClient struct {
	*Client
}

func NewClinicClient(client *Client) *ClinicClient {
	return &ClinicClient{Client: client}
}

func (c *ClinicClient) SubmitDoctorProfile(ctx context.Context, doctorId string, fields map[string]string, files []model.UploadFile) error {
	return c.submitMultipart(ctx, "/api/doctors/"+doctorId+"/profile", fields, files)
}

func (c *ClinicClient) SubmitClinicRegistration(ctx context.Context, clinicId string, fields map[string]string, files []model.UploadFile) error {
	return c.submitMultipart(ctx, "/api/clinics/"+clinicId+"/registration", fields, files)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (c *ClinicClient) submitMultipart(ctx context.Context, path string, fields map[string]string, files []model.UploadFile) error {
	ctx, span := otel.Tracer.Start(ctx, "upstream.submitMultipart", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			common.UtilSpanError(span, err)
			return err
		}
	}

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(file.Field), quoteEscaper.Replace(file.Name)))
		header.Set("Content-Type", file.ContentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			common.UtilSpanError(span, err)
			return err
		}

		if _, err := part.Write(file.Data); err != nil {
			common.UtilSpanError(span, err)
			return err
		}
	}

	if err := writer.Close(); err != nil {
		common.UtilSpanError(span, err)
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		common.UtilSpanError(span, err)
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.Http.Do(req)
	if err != nil {
		common.UtilSpanError(span, err)
		return &errs.HttpError{Code: http.StatusBadGateway, Message: "Upstream unavailable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = c.errorFromResponse(resp)
		common.UtilSpanError(span, err)
		return err
	}

	return nil
}
