package http

import (
	"clinic-booking/common"
	"clinic-booking/common/constant"
	"clinic-booking/common/contract"
	"clinic-booking/common/errs"
	"clinic-booking/common/otel"
	"clinic-booking/model"
	"clinic-booking/outbound/depositstore"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"golang.org/x/text/message"
)

type DepositHttp struct {
	Store                *depositstore.Store
	Cache                *redis.Client
	Wallet               contract.WalletApi
	Sessions             contract.PaymentSession
	Publisher            jetstream.Publisher
	Validate             *validator.Validate
	VndCurrencyFormatter *message.Printer

	TimeNow func() time.Time

	minAmount     int64
	expiredAfter  time.Duration
	sizeBulkSweep int32
}

func RegisterDepositHttp(
	mux *http.ServeMux,
	internalMux *http.ServeMux,
	cfg *viper.Viper,
	store *depositstore.Store,
	cache *redis.Client,
	wallet contract.WalletApi,
	sessions contract.PaymentSession,
	publisher jetstream.Publisher,
	validate *validator.Validate,
	vndCurrencyFormatter *message.Printer,
) *DepositHttp {
	in := &DepositHttp{
		Store:                store,
		Cache:                cache,
		Wallet:               wallet,
		Sessions:             sessions,
		Publisher:            publisher,
		Validate:             validate,
		VndCurrencyFormatter: vndCurrencyFormatter,
		TimeNow:              time.Now,

		minAmount:     cfg.GetInt64("deposit.min_amount"),
		expiredAfter:  cfg.GetDuration("deposit.expired_after"),
		sizeBulkSweep: cfg.GetInt32("deposit.bulk_sweep_size"),
	}

	mux.HandleFunc("POST /api/deposits", in.create)
	mux.HandleFunc("GET /api/deposits/{id}", in.get)
	mux.HandleFunc("POST /api/deposits/{id}/check", in.check)
	mux.HandleFunc("DELETE /api/deposits/{id}", in.cancel)

	internalMux.HandleFunc("POST /api/internal/deposits/sweep", in.sweep)

	return in
}

func (in *DepositHttp) create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.validateCreateDepositRequest(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	claims := ClaimsFromCtx(r.Context())
	if claims == nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusUnauthorized, Message: "Missing bearer token"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "DepositHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create deposit receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	lockKey := fmt.Sprintf(constant.DepositLockKey, claims.Subject)
	locked, err := in.Cache.SetNX(ctx, lockKey, true, constant.DepositLockDefaultTTL).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to set deposit lock", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if !locked {
		slog.DebugContext(ctx, "deposit already in progress", traceIdAttr)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Deposit already in progress"})
		return
	}

	defer func() {
		if err != nil {
			redisErr := in.Cache.Del(context.WithoutCancel(ctx), lockKey).Err()
			if redisErr != nil {
				slog.ErrorContext(ctx, "failed to release deposit lock", traceIdAttr, slog.Any(constant.LogFieldErr, redisErr))
			}
		}
	}()

	txn, err := in.Wallet.CreateTopUp(ctx, claims.Subject, req.Amount)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create top-up", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	externalId := ulid.Make().String()
	expiredAt := in.TimeNow().Add(in.expiredAfter)

	_, err = in.Store.InsertSession(ctx, model.DepositSession{
		ExternalId:    externalId,
		CustomerId:    claims.Subject,
		CustomerEmail: claims.Email,
		TransactionId: txn.TransactionId,
		Amount:        txn.Amount,
		QrUrl:         txn.QrUrl,
		BankNumber:    txn.BankNumber,
		ExpiredAt:     expiredAt,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to insert deposit session", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if joinErr := in.Sessions.Join(txn.TransactionId, in.onPushStatus(txn.TransactionId)); joinErr != nil {
		// Manual check and the sweeper still resolve the session without a
		// push subscription.
		slog.ErrorContext(ctx, "failed to join payment session", traceIdAttr, slog.Any(constant.LogFieldErr, joinErr))
	}

	slog.InfoContext(ctx, "create deposit success", traceIdAttr, slog.Any(constant.LogFieldResponse, externalId))

	writeJSONResponse(w, http.StatusOK, model.CreateDepositResponse{
		Id:              externalId,
		TransactionId:   txn.TransactionId,
		QrUrl:           txn.QrUrl,
		BankNumber:      txn.BankNumber,
		Amount:          txn.Amount,
		AmountFormatted: in.VndCurrencyFormatter.Sprintf("%d₫", txn.Amount),
		AmountInWords:   common.AmountToVietnameseWords(txn.Amount),
		ExpiredAt:       expiredAt,
	})
}

func (in *DepositHttp) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "DepositHttp.get")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	session, err := in.Store.FindSessionByExternalId(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Deposit not found"})
			return
		}

		slog.ErrorContext(ctx, "failed to find deposit session", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, session)
}

func (in *DepositHttp) check(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "DepositHttp.check")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "check deposit receive request", traceIdAttr)

	session, err := in.Store.FindSessionByExternalId(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Deposit not found"})
			return
		}

		slog.ErrorContext(ctx, "failed to find deposit session", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if session.Status.Terminal() {
		writeJSONResponse(w, http.StatusOK, model.CheckDepositResponse{Id: session.ExternalId, Status: session.Status})
		return
	}

	status, err := in.Wallet.GetTransactionStatus(ctx, session.TransactionId)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get transaction status", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if status.Terminal() {
		err = common.PublishMessage(ctx, in.Publisher, constant.SubjectResolveDeposit, model.ResolveDepositEventMessage{
			TransactionId: session.TransactionId,
			Status:        status,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to publish resolve deposit message", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			writeErrorResponse(w, err)
			return
		}

		in.Sessions.Leave(session.TransactionId)
	}

	slog.InfoContext(ctx, "check deposit success", traceIdAttr, slog.Any(constant.LogFieldResponse, status))

	writeJSONResponse(w, http.StatusOK, model.CheckDepositResponse{Id: session.ExternalId, Status: status})
}

// cancel dismisses the payment screen. The session stays pending so a later
// push, check, or sweep can still resolve it; only the push subscription is
// released.
func (in *DepositHttp) cancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "DepositHttp.cancel")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	session, err := in.Store.FindSessionByExternalId(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Deposit not found"})
			return
		}

		slog.ErrorContext(ctx, "failed to find deposit session", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	in.Sessions.Leave(session.TransactionId)

	slog.InfoContext(ctx, "cancel deposit success", traceIdAttr, slog.Any(constant.LogFieldResponse, session.ExternalId))

	writeJSONResponse(w, http.StatusOK, nil)
}

func (in *DepositHttp) sweep(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "DepositHttp.sweep")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "sweep deposits receive request", traceIdAttr)

	expiredSessions, err := in.Store.ListExpiredPending(ctx, in.TimeNow(), in.sizeBulkSweep)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list expired deposit sessions", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if len(expiredSessions) == 0 {
		slog.DebugContext(ctx, "no expired deposit sessions", traceIdAttr)
		writeJSONResponse(w, http.StatusOK, nil)
		return
	}

	for _, session := range expiredSessions {
		// The payment backend may have settled the transaction after the
		// local deadline. Ask before declaring it expired.
		resolvedStatus := model.DepositStatusExpired
		status, statusErr := in.Wallet.GetTransactionStatus(ctx, session.TransactionId)
		if statusErr != nil {
			slog.WarnContext(ctx, "failed to get transaction status during sweep", traceIdAttr, slog.Any(constant.LogFieldErr, statusErr))
		} else if status.Terminal() {
			resolvedStatus = status
		}

		err = common.PublishMessage(ctx, in.Publisher, constant.SubjectResolveDeposit, model.ResolveDepositEventMessage{
			TransactionId: session.TransactionId,
			Status:        resolvedStatus,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to publish resolve deposit message", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			writeErrorResponse(w, err)
			return
		}

		in.Sessions.Leave(session.TransactionId)
	}

	slog.InfoContext(ctx, "sweep deposits success", slog.Any(constant.LogFieldResponse, len(expiredSessions)), traceIdAttr)

	writeJSONResponse(w, http.StatusOK, nil)
}

func (in *DepositHttp) onPushStatus(transactionId string) func(bool) {
	return func(isSuccess bool) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		status := model.DepositStatusFailed
		if isSuccess {
			status = model.DepositStatusCompleted
		}

		err := common.PublishMessage(ctx, in.Publisher, constant.SubjectResolveDeposit, model.ResolveDepositEventMessage{
			TransactionId: transactionId,
			Status:        status,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to publish resolve deposit message", slog.Any(constant.LogFieldErr, err))
		}
	}
}

func (in *DepositHttp) validateCreateDepositRequest(req model.CreateDepositRequest) error {
	if err := in.Validate.Struct(req); err != nil {
		return err
	}

	if req.Amount < in.minAmount {
		return &errs.HttpError{
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Data: map[string]any{
				"Amount": fmt.Sprintf("must be at least %s", in.VndCurrencyFormatter.Sprintf("%d₫", in.minAmount)),
			},
		}
	}

	return nil
}
