package cron

import (
	"clinic-booking/common"
	"clinic-booking/common/constant"
	"clinic-booking/common/contract"
	"clinic-booking/common/vars"
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// AddressCron keeps the in-process province snapshot fresh. Districts and
// wards are cached on demand in redis; provinces are small and read on every
// address form, so they live in process memory.
type AddressCron struct {
	Cfg       *viper.Viper
	Addresses contract.AddressApi
}

func (in AddressCron) Start(ctx context.Context) {
	refreshTicker := time.NewTicker(in.Cfg.GetDuration("cron.address.refresh.interval"))
	defer refreshTicker.Stop()

	// Run initial refresh
	in.refresh(ctx)

	slog.Info("address cron started")

	for {
		select {
		case <-refreshTicker.C:
			in.refresh(ctx)
		case <-ctx.Done():
			slog.Info("address cron stopped")
			return
		}
	}
}

func (in AddressCron) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, in.Cfg.GetDuration("cron.address.refresh.timeout"))
	defer cancel()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.DebugContext(ctx, "refreshing provinces", traceIdAttr)

	provinces, err := in.Addresses.GetProvinces(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get provinces", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return
	}

	if len(provinces) == 0 {
		// An empty catalog response is treated as an upstream glitch; the
		// previous snapshot keeps serving.
		slog.WarnContext(ctx, "province refresh returned no rows, keeping previous snapshot", traceIdAttr)
		return
	}

	vars.SetProvinces(provinces)

	slog.DebugContext(ctx, "provinces refreshed successfully", traceIdAttr)
}
