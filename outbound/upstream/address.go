package upstream

import (
	"clinic-booking/model"
	"context"
	"net/http"
	"net/url"
)

// AddressClient talks to the province/district/ward catalog.
type AddressClient struct {
	*Client
}

func NewAddressClient(client *Client) *AddressClient {
	return &AddressClient{Client: client}
}

func (c *AddressClient) GetProvinces(ctx context.Context) ([]model.AddressUnit, error) {
	var units []model.AddressUnit
	err := c.doJSON(ctx, http.MethodGet, "/api/addresses/provinces", nil, nil, &units)
	return units, err
}

func (c *AddressClient) GetDistricts(ctx context.Context, provinceId string) ([]model.AddressUnit, error) {
	q := url.Values{}
	q.Set("provinceId", provinceId)

	var units []model.AddressUnit
	err := c.doJSON(ctx, http.MethodGet, "/api/addresses/districts", q, nil, &units)
	return units, err
}

func (c *AddressClient) GetWards(ctx context.Context, districtId string) ([]model.AddressUnit, error) {
	q := url.Values{}
	q.Set("districtId", districtId)

	var units []model.AddressUnit
	err := c.doJSON(ctx, http.MethodGet, "/api/addresses/wards", q, nil, &units)
	return units, err
}
