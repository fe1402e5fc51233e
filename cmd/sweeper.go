package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// runSweeperCmd periodically triggers the expired-deposit sweep endpoint on
// the http process, which owns the payment session subscriptions.
func runSweeperCmd(ctx context.Context) {
	cfg := newCfg("env")

	sweepTicker := time.NewTicker(cfg.GetDuration("sweeper.interval"))
	defer sweepTicker.Stop()

	sweepUrl := cfg.GetString("sweeper.url")

	client := &http.Client{
		Timeout: 20 * time.Second,
	}

	slog.InfoContext(ctx, "sweeper started", slog.String("sweep_url", sweepUrl))

	go func() {
		for {
			select {
			case <-sweepTicker.C:
				go func() {
					reqCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()

					req, err := http.NewRequestWithContext(reqCtx, "POST", sweepUrl, nil)
					if err != nil {
						slog.ErrorContext(ctx, "Failed to create request",
							slog.String("url", sweepUrl),
							slog.Any("error", err))
						return
					}

					// Fire and forget - ignore response
					resp, _ := client.Do(req)
					if resp != nil {
						resp.Body.Close()
					}
				}()

			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()

	slog.InfoContext(ctx, "sweeper stopped")
}
