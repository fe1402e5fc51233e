package upstream

import (
	"clinic-booking/model"
	"context"
	"net/http"
)

// WalletClient talks to the wallet / payment-gateway service.
type WalletClient struct {
	*Client
}

func NewWalletClient(client *Client) *WalletClient {
	return &WalletClient{Client: client}
}

func (c *WalletClient) GetUserProfile(ctx context.Context, customerId string) (model.UserProfile, error) {
	var profile model.UserProfile
	err := c.doJSON(ctx, http.MethodGet, "/api/users/"+customerId, nil, nil, &profile)
	return profile, err
}

type createTopUpRequest struct {
	CustomerId string `json:"customer_id"`
	Amount     int64  `json:"amount"`
}

func (c *WalletClient) CreateTopUp(ctx context.Context, customerId string, amount int64) (model.Transaction, error) {
	var txn model.Transaction
	err := c.doJSON(ctx, http.MethodPost, "/api/wallet/top-ups", nil, createTopUpRequest{
		CustomerId: customerId,
		Amount:     amount,
	}, &txn)
	return txn, err
}

type transactionStatusResponse struct {
	Status model.DepositStatus `json:"status"`
}

func (c *WalletClient) GetTransactionStatus(ctx context.Context, transactionId string) (model.DepositStatus, error) {
	var resp transactionStatusResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/wallet/transactions/"+transactionId+"/status", nil, nil, &resp)
	return resp.Status, err
}
