package event

import (
	"clinic-booking/common"
	"clinic-booking/common/constant"
	"clinic-booking/common/otel"
	"clinic-booking/model"
	"clinic-booking/outbound/depositstore"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/message"
)

// DepositEvent applies resolve signals to deposit sessions. Every signal
// path funnels into ResolveHandler, so duplicate or racing signals collapse
// into one applied transition.
type DepositEvent struct {
	Store                *depositstore.Store
	Cache                *redis.Client
	Publisher            jetstream.Publisher
	VndCurrencyFormatter *message.Printer

	TimeNow func() time.Time

	Timeout time.Duration
}

func (in DepositEvent) ResolveHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.ResolveDepositEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "resolve deposit event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	if !req.Status.Terminal() {
		slog.WarnContext(ctx, "resolve deposit event with non-terminal status", slog.Any(constant.LogFieldPayload, req))
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "DepositEvent.resolve")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "resolve deposit event receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	session, err := in.Store.ResolveSession(ctx, req.TransactionId, req.Status, in.TimeNow())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			slog.WarnContext(ctx, "deposit session already resolved or not found", traceIdAttr)
			return nil
		}

		slog.ErrorContext(ctx, "failed to resolve deposit session", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	if req.Status != model.DepositStatusCompleted {
		slog.InfoContext(ctx, "deposit session resolved", traceIdAttr, slog.Any(constant.LogFieldResponse, session.Status))
		return nil
	}

	in.creditBalance(ctx, session)

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectSendEmail, model.SendEmailEventMessage{
		To:      session.CustomerEmail,
		Subject: "Deposit Receipt",
		Body:    in.buildDepositReceiptEmailBody(session),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish send email message", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	slog.InfoContext(ctx, "deposit session resolved", traceIdAttr, slog.Any(constant.LogFieldResponse, session.Status))

	return nil
}

// creditBalance bumps the cached balance so the profile shows the credit
// immediately. Only an existing key is incremented: if the cache is cold the
// next profile read seeds it from the wallet backend, which is the source of
// truth. The CAS in ResolveSession guarantees this runs at most once per
// session, so a failure here is logged and absorbed rather than retried.
func (in DepositEvent) creditBalance(ctx context.Context, session model.DepositSession) {
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	balanceKey := fmt.Sprintf(constant.CustomerBalanceKey, session.CustomerId)

	exists, err := in.Cache.Exists(ctx, balanceKey).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to check balance cache", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return
	}

	if exists == 0 {
		return
	}

	if err := in.Cache.IncrBy(ctx, balanceKey, session.Amount).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to credit balance cache", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}
}

func (in DepositEvent) buildDepositReceiptEmailBody(session model.DepositSession) string {
	amountFormatted := in.VndCurrencyFormatter.Sprintf("%d₫", session.Amount)

	return fmt.Sprintf(constant.EmailDepositReceiptTemplate,
		session.CustomerEmail,
		session.ExternalId,
		amountFormatted,
		common.AmountToVietnameseWords(session.Amount),
	)
}
