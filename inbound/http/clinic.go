package http

import (
	"clinic-booking/common"
	"clinic-booking/common/constant"
	"clinic-booking/common/contract"
	"clinic-booking/common/errs"
	"clinic-booking/common/otel"
	"clinic-booking/model"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var allowedUploadTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"application/pdf": true,
}

var doctorFileFields = []string{"profile_picture", "certificates", "licenses"}
var clinicFileFields = []string{"business_license", "operating_permit", "photos"}

type ClinicHttp struct {
	Clinic   contract.ClinicApi
	Validate *validator.Validate

	maxUploadBytes int64
}

func RegisterClinicHttp(mux *http.ServeMux, cfg *viper.Viper, clinic contract.ClinicApi, validate *validator.Validate) *ClinicHttp {
	in := &ClinicHttp{
		Clinic:   clinic,
		Validate: validate,

		maxUploadBytes: cfg.GetInt64("clinic.max_upload_bytes"),
	}

	mux.HandleFunc("POST /api/doctors/{id}/profile", in.submitDoctorProfile)
	mux.HandleFunc("POST /api/clinics/{id}/registration", in.submitClinicRegistration)

	return in
}

func (in *ClinicHttp) submitDoctorProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "ClinicHttp.submitDoctorProfile")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	doctorId := r.PathValue("id")
	slog.InfoContext(ctx, "submit doctor profile receive request", slog.Any(constant.LogFieldPayload, doctorId), traceIdAttr)

	if err := r.ParseMultipartForm(in.maxUploadBytes); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid multipart form"})
		return
	}

	form := model.DoctorProfileForm{
		FullName:    r.FormValue("full_name"),
		Phone:       r.FormValue("phone"),
		Email:       r.FormValue("email"),
		ProvinceId:  r.FormValue("province_id"),
		DistrictId:  r.FormValue("district_id"),
		WardId:      r.FormValue("ward_id"),
		Address:     r.FormValue("address"),
		Description: r.FormValue("description"),
	}

	if err := in.Validate.Struct(form); err != nil {
		writeErrorResponse(w, err)
		return
	}

	files, err := collectUploads(r.MultipartForm, doctorFileFields, in.maxUploadBytes)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	fields := map[string]string{
		"full_name":   form.FullName,
		"phone":       form.Phone,
		"email":       form.Email,
		"province_id": form.ProvinceId,
		"district_id": form.DistrictId,
		"ward_id":     form.WardId,
		"address":     form.Address,
		"description": form.Description,
	}

	if err := in.Clinic.SubmitDoctorProfile(ctx, doctorId, fields, files); err != nil {
		slog.ErrorContext(ctx, "failed to submit doctor profile", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "submit doctor profile success", traceIdAttr, slog.Any(constant.LogFieldResponse, doctorId))

	writeJSONResponse(w, http.StatusOK, nil)
}

func (in *ClinicHttp) submitClinicRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "ClinicHttp.submitClinicRegistration")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	clinicId := r.PathValue("id")
	slog.InfoContext(ctx, "submit clinic registration receive request", slog.Any(constant.LogFieldPayload, clinicId), traceIdAttr)

	if err := r.ParseMultipartForm(in.maxUploadBytes); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid multipart form"})
		return
	}

	form := model.ClinicRegistrationForm{
		Name:       r.FormValue("name"),
		TaxCode:    r.FormValue("tax_code"),
		Phone:      r.FormValue("phone"),
		Email:      r.FormValue("email"),
		ProvinceId: r.FormValue("province_id"),
		DistrictId: r.FormValue("district_id"),
		WardId:     r.FormValue("ward_id"),
		Address:    r.FormValue("address"),
	}

	if err := in.Validate.Struct(form); err != nil {
		writeErrorResponse(w, err)
		return
	}

	files, err := collectUploads(r.MultipartForm, clinicFileFields, in.maxUploadBytes)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	fields := map[string]string{
		"name":        form.Name,
		"tax_code":    form.TaxCode,
		"phone":       form.Phone,
		"email":       form.Email,
		"province_id": form.ProvinceId,
		"district_id": form.DistrictId,
		"ward_id":     form.WardId,
		"address":     form.Address,
	}

	if err := in.Clinic.SubmitClinicRegistration(ctx, clinicId, fields, files); err != nil {
		slog.ErrorContext(ctx, "failed to submit clinic registration", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "submit clinic registration success", traceIdAttr, slog.Any(constant.LogFieldResponse, clinicId))

	writeJSONResponse(w, http.StatusOK, nil)
}

// collectUploads reads file parts under the known field names, rejecting any
// type the clinic registry will not accept. Files are buffered whole; the
// parse call already bounded the total form size.
func collectUploads(form *multipart.Form, fieldNames []string, maxBytes int64) ([]model.UploadFile, error) {
	var files []model.UploadFile

	for _, fieldName := range fieldNames {
		for _, header := range form.File[fieldName] {
			contentType := header.Header.Get("Content-Type")
			if !allowedUploadTypes[contentType] {
				return nil, &errs.HttpError{
					Code:    http.StatusBadRequest,
					Message: "Validation failed",
					Data: map[string]any{
						fieldName: fmt.Sprintf("unsupported file type %q", contentType),
					},
				}
			}

			file, err := header.Open()
			if err != nil {
				return nil, err
			}

			data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
			file.Close()
			if err != nil {
				return nil, err
			}

			if int64(len(data)) > maxBytes {
				return nil, &errs.HttpError{
					Code:    http.StatusBadRequest,
					Message: "Validation failed",
					Data: map[string]any{
						fieldName: "file too large",
					},
				}
			}

			files = append(files, model.UploadFile{
				Field:       fieldName,
				Name:        header.Filename,
				ContentType: contentType,
				Data:        data,
			})
		}
	}

	return files, nil
}
