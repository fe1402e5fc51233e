package http

import (
	"clinic-booking/common"
	"clinic-booking/common/constant"
	"clinic-booking/common/contract"
	"clinic-booking/common/errs"
	"clinic-booking/common/otel"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
)

type ProfileHttp struct {
	Cache  *redis.Client
	Wallet contract.WalletApi
}

func RegisterProfileHttp(mux *http.ServeMux, cache *redis.Client, wallet contract.WalletApi) *ProfileHttp {
	in := &ProfileHttp{
		Cache:  cache,
		Wallet: wallet,
	}

	mux.HandleFunc("GET /api/profile", in.get)

	return in
}

// get serves the profile with the balance overlaid from cache. The cache is
// credited by the deposit resolver before the wallet backend settles, so the
// user sees the new balance right after a completed deposit.
func (in *ProfileHttp) get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromCtx(r.Context())
	if claims == nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusUnauthorized, Message: "Missing bearer token"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ProfileHttp.get")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	profile, err := in.Wallet.GetUserProfile(ctx, claims.Subject)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get user profile", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	balanceKey := fmt.Sprintf(constant.CustomerBalanceKey, claims.Subject)
	cachedBalance, err := in.Cache.Get(ctx, balanceKey).Int64()
	switch {
	case err == nil:
		profile.Balance = cachedBalance
	case errors.Is(err, redis.Nil):
		// Seed with SetNX so a concurrent credit from the resolver wins.
		if redisErr := in.Cache.SetNX(ctx, balanceKey, profile.Balance, 0).Err(); redisErr != nil {
			slog.ErrorContext(ctx, "failed to seed balance cache", traceIdAttr, slog.Any(constant.LogFieldErr, redisErr))
		}
	default:
		slog.ErrorContext(ctx, "failed to read balance cache", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	writeJSONResponse(w, http.StatusOK, profile)
}
