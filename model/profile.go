package model

type UserProfile struct {
	Id         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Balance    int64  `json:"balance"`
	ProvinceId string `json:"province_id"`
	DistrictId string `json:"district_id"`
	WardId     string `json:"ward_id"`
	Address    string `json:"address"`
}
