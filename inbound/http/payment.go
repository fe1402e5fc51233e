package http

import (
	"clinic-booking/common"
	"clinic-booking/common/constant"
	"clinic-booking/common/contract"
	"clinic-booking/common/errs"
	"clinic-booking/common/otel"
	"clinic-booking/model"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go/jetstream"
)

// PaymentHttp receives server-to-server callbacks from the payment gateway.
// The callback is just another resolve signal: it goes through the same
// queue as the push event and the manual check.
type PaymentHttp struct {
	Publisher jetstream.Publisher
	Sessions  contract.PaymentSession
	Validate  *validator.Validate
}

func RegisterPaymentHttp(
	mux *http.ServeMux,
	publisher jetstream.Publisher,
	sessions contract.PaymentSession,
	validate *validator.Validate,
) *PaymentHttp {
	in := &PaymentHttp{
		Publisher: publisher,
		Sessions:  sessions,
		Validate:  validate,
	}

	mux.HandleFunc("POST /api/payments/callback", in.callback)

	return in
}

func (in *PaymentHttp) callback(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "PaymentHttp.callback")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "payment callback receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	status := model.DepositStatusFailed
	if *req.Success {
		status = model.DepositStatusCompleted
	}

	err := common.PublishMessage(ctx, in.Publisher, constant.SubjectResolveDeposit, model.ResolveDepositEventMessage{
		TransactionId: req.TransactionId,
		Status:        status,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish resolve deposit message", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	in.Sessions.Leave(req.TransactionId)

	slog.InfoContext(ctx, "payment callback success", traceIdAttr)

	writeJSONResponse(w, http.StatusOK, nil)
}
