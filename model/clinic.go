package model

type DoctorProfileForm struct {
	FullName    string `json:"full_name" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	ProvinceId  string `json:"province_id"`
	DistrictId  string `json:"district_id"`
	WardId      string `json:"ward_id"`
	Address     string `json:"address"`
	Description string `json:"description" validate:"max=2000"`
}

type ClinicRegistrationForm struct {
	Name       string `json:"name" validate:"required,max=150"`
	TaxCode    string `json:"tax_code" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	ProvinceId string `json:"province_id" validate:"required"`
	DistrictId string `json:"district_id" validate:"required"`
	WardId     string `json:"ward_id" validate:"required"`
	Address    string `json:"address" validate:"required"`
}

// UploadFile is a file part read from a multipart form, forwarded verbatim
// to the clinic registry.
type UploadFile struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}
