package constant

const (
	QueueStreamName = "clinic_booking_queue_stream"
)

const (
	AllWildcard     = "events.>"
	DepositWildcard = "events.deposit.>"
	EmailWildcard   = "events.email.>"

	SubjectResolveDeposit = "events.deposit.resolve"
	SubjectSendEmail      = "events.email.send"
)

// PaymentStatusSubject is a core NATS subject, not part of the work-queue
// stream. One subject per transaction, single-shot delivery.
const PaymentStatusSubject = "payments.status.%s"
