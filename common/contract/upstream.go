package contract

import (
	"clinic-booking/model"
	"context"
)

//go:generate mockgen -source=upstream.go -destination=mocks/upstream.go -package=mocks

// WalletApi is the wallet / payment-gateway service.
type WalletApi interface {
	GetUserProfile(ctx context.Context, customerId string) (model.UserProfile, error)
	CreateTopUp(ctx context.Context, customerId string, amount int64) (model.Transaction, error)
	GetTransactionStatus(ctx context.Context, transactionId string) (model.DepositStatus, error)
}

// ScheduleApi is the scheduling service owning all appointment state.
type ScheduleApi interface {
	GetClinicSchedules(ctx context.Context, query model.ClinicScheduleQuery) (model.SchedulePage, error)
	GetCustomerSchedules(ctx context.Context, query model.CustomerScheduleQuery) (model.SchedulePage, error)
	GetClinicSchedule(ctx context.Context, scheduleId string) (model.CustomerSchedule, error)
	UpdateScheduleStatus(ctx context.Context, scheduleId string, status model.ScheduleStatus) error
	GetNextScheduleAvailability(ctx context.Context, scheduleId string) (string, error)
	CreateClinicSchedules(ctx context.Context, rows []model.WorkingDateRow) error
}

// AddressApi is the province/district/ward catalog.
type AddressApi interface {
	GetProvinces(ctx context.Context) ([]model.AddressUnit, error)
	GetDistricts(ctx context.Context, provinceId string) ([]model.AddressUnit, error)
	GetWards(ctx context.Context, districtId string) ([]model.AddressUnit, error)
}

// ClinicApi is the clinic registry accepting multipart profile submissions.
type ClinicApi interface {
	SubmitDoctorProfile(ctx context.Context, doctorId string, fields map[string]string, files []model.UploadFile) error
	SubmitClinicRegistration(ctx context.Context, clinicId string, fields map[string]string, files []model.UploadFile) error
}

// PaymentSession manages the at-most-one push subscription per transaction.
// Leave must be called on every path that exits the payment step.
type PaymentSession interface {
	Join(transactionId string, onStatus func(isSuccess bool)) error
	Leave(transactionId string)
	Close()
}
