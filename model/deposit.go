package model

import "time"

type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "pending"
	DepositStatusCompleted DepositStatus = "completed"
	DepositStatusFailed    DepositStatus = "failed"
	DepositStatusExpired   DepositStatus = "expired"
)

// Terminal reports whether the status cannot change anymore. The backend is
// the only authority for leaving pending; the service just relays it.
func (s DepositStatus) Terminal() bool {
	return s == DepositStatusCompleted || s == DepositStatusFailed || s == DepositStatusExpired
}

type Transaction struct {
	TransactionId string `json:"transaction_id"`
	QrUrl         string `json:"qr_url"`
	BankNumber    string `json:"bank_number"`
	Amount        int64  `json:"amount"`
}

type DepositSession struct {
	Id            int32         `json:"-"`
	ExternalId    string        `json:"id"`
	CustomerId    string        `json:"-"`
	CustomerEmail string        `json:"-"`
	TransactionId string        `json:"transaction_id"`
	Amount        int64         `json:"amount"`
	QrUrl         string        `json:"qr_url"`
	BankNumber    string        `json:"bank_number"`
	Status        DepositStatus `json:"status"`
	ExpiredAt     time.Time     `json:"expired_at"`
}

type CreateDepositRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type CreateDepositResponse struct {
	Id              string    `json:"id"`
	TransactionId   string    `json:"transaction_id"`
	QrUrl           string    `json:"qr_url"`
	BankNumber      string    `json:"bank_number"`
	Amount          int64     `json:"amount"`
	AmountFormatted string    `json:"amount_formatted"`
	AmountInWords   string    `json:"amount_in_words"`
	ExpiredAt       time.Time `json:"expired_at"`
}

type CheckDepositResponse struct {
	Id     string        `json:"id"`
	Status DepositStatus `json:"status"`
}

// PaymentStatusMessage is the push payload delivered on the per-transaction
// payment subject by the payment gateway.
type PaymentStatusMessage struct {
	IsSuccess bool `json:"is_success"`
}

type PaymentCallbackRequest struct {
	TransactionId string `json:"transaction_id" validate:"required"`
	Success       *bool  `json:"success" validate:"required"`
}

// ResolveDepositEventMessage is published by every signal path (push event,
// manual check, gateway webhook, sweeper) and applied by a single consumer,
// so arrival order never matters.
type ResolveDepositEventMessage struct {
	TransactionId string        `json:"transaction_id"`
	Status        DepositStatus `json:"status"`
}

type SendEmailEventMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
