package model

import "strings"

type AddressUnit struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type ResolveAddressRequest struct {
	Province string `json:"province" validate:"required"`
	District string `json:"district"`
	Ward     string `json:"ward"`
}

type ResolveAddressResponse struct {
	ProvinceId string `json:"province_id"`
	DistrictId string `json:"district_id"`
	WardId     string `json:"ward_id"`
}

// FindAddressUnit resolves a server-provided address name back to its option
// id. Matching is case- and surrounding-space-insensitive; no match returns
// an empty id rather than a guess.
func FindAddressUnit(units []AddressUnit, name string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return ""
	}

	for _, unit := range units {
		if strings.ToLower(strings.TrimSpace(unit.Name)) == needle {
			return unit.Id
		}
	}

	return ""
}
