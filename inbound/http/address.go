package http

import (
	"clinic-booking/common"
	"clinic-booking/common/constant"
	"clinic-booking/common/contract"
	"clinic-booking/common/errs"
	"clinic-booking/common/otel"
	"clinic-booking/common/vars"
	"clinic-booking/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type AddressHttp struct {
	Addresses contract.AddressApi
	Cache     *redis.Client
	Validate  *validator.Validate

	cacheTTL time.Duration
}

func RegisterAddressHttp(
	mux *http.ServeMux,
	cfg *viper.Viper,
	addresses contract.AddressApi,
	cache *redis.Client,
	validate *validator.Validate,
) *AddressHttp {
	in := &AddressHttp{
		Addresses: addresses,
		Cache:     cache,
		Validate:  validate,

		cacheTTL: cfg.GetDuration("address.cache_ttl"),
	}

	mux.HandleFunc("GET /api/addresses/provinces", in.provinces)
	mux.HandleFunc("GET /api/addresses/districts", in.districts)
	mux.HandleFunc("GET /api/addresses/wards", in.wards)
	mux.HandleFunc("POST /api/addresses/resolve", in.resolve)

	return in
}

func (in *AddressHttp) provinces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "AddressHttp.provinces")
	defer span.End()

	provinces, err := in.provinceList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get provinces", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, provinces)
}

func (in *AddressHttp) districts(w http.ResponseWriter, r *http.Request) {
	provinceId := r.URL.Query().Get("province_id")
	if provinceId == "" {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "province_id is required"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "AddressHttp.districts")
	defer span.End()

	districts, err := in.cachedUnits(ctx, fmt.Sprintf(constant.DistrictListKey, provinceId), func(ctx context.Context) ([]model.AddressUnit, error) {
		return in.Addresses.GetDistricts(ctx, provinceId)
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to get districts", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, districts)
}

func (in *AddressHttp) wards(w http.ResponseWriter, r *http.Request) {
	districtId := r.URL.Query().Get("district_id")
	if districtId == "" {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "district_id is required"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "AddressHttp.wards")
	defer span.End()

	wards, err := in.cachedUnits(ctx, fmt.Sprintf(constant.WardListKey, districtId), func(ctx context.Context) ([]model.AddressUnit, error) {
		return in.Addresses.GetWards(ctx, districtId)
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to get wards", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, wards)
}

// resolve turns stored address names back into option ids, cascading level by
// level. An unmatched name stops the cascade and leaves the remaining ids
// empty; the caller renders whatever resolved.
func (in *AddressHttp) resolve(w http.ResponseWriter, r *http.Request) {
	var req model.ResolveAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "AddressHttp.resolve")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "resolve address receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	var resp model.ResolveAddressResponse

	provinces, err := in.provinceList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get provinces", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	resp.ProvinceId = model.FindAddressUnit(provinces, req.Province)
	if resp.ProvinceId == "" || req.District == "" {
		writeJSONResponse(w, http.StatusOK, resp)
		return
	}

	districts, err := in.cachedUnits(ctx, fmt.Sprintf(constant.DistrictListKey, resp.ProvinceId), func(ctx context.Context) ([]model.AddressUnit, error) {
		return in.Addresses.GetDistricts(ctx, resp.ProvinceId)
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to get districts", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	resp.DistrictId = model.FindAddressUnit(districts, req.District)
	if resp.DistrictId == "" || req.Ward == "" {
		writeJSONResponse(w, http.StatusOK, resp)
		return
	}

	wards, err := in.cachedUnits(ctx, fmt.Sprintf(constant.WardListKey, resp.DistrictId), func(ctx context.Context) ([]model.AddressUnit, error) {
		return in.Addresses.GetWards(ctx, resp.DistrictId)
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to get wards", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	resp.WardId = model.FindAddressUnit(wards, req.Ward)

	writeJSONResponse(w, http.StatusOK, resp)
}

// provinceList serves the in-process snapshot, falling back to the catalog
// service before the first refresh has landed.
func (in *AddressHttp) provinceList(ctx context.Context) ([]model.AddressUnit, error) {
	if provinces := vars.GetProvinces(); provinces != nil {
		return provinces, nil
	}

	provinces, err := in.Addresses.GetProvinces(ctx)
	if err != nil {
		return nil, err
	}

	vars.SetProvinces(provinces)
	return provinces, nil
}

func (in *AddressHttp) cachedUnits(ctx context.Context, cacheKey string, fetch func(context.Context) ([]model.AddressUnit, error)) ([]model.AddressUnit, error) {
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	cached, err := in.Cache.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var units []model.AddressUnit
		if unmarshalErr := json.Unmarshal(cached, &units); unmarshalErr == nil {
			return units, nil
		}

		slog.WarnContext(ctx, "failed to unmarshal cached address units", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	} else if !errors.Is(err, redis.Nil) {
		slog.ErrorContext(ctx, "failed to read address cache", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	units, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(units)
	if err != nil {
		return units, nil
	}

	if redisErr := in.Cache.SetEx(ctx, cacheKey, encoded, in.cacheTTL).Err(); redisErr != nil {
		slog.ErrorContext(ctx, "failed to write address cache", traceIdAttr, slog.Any(constant.LogFieldErr, redisErr))
	}

	return units, nil
}
