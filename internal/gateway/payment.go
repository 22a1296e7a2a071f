package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/storesys/checkout/internal/domain/checkout"
)

var _ checkout.PaymentGateway = (*PaymentClient)(nil)

// PaymentClient is the HTTP adapter for the external payment system.
type PaymentClient struct {
	baseURL string
	client  *http.Client
}

// NewPaymentClient creates a PaymentClient for the given base URL.
func NewPaymentClient(baseURL string, timeout time.Duration) *PaymentClient {
	return &PaymentClient{
		baseURL: baseURL,
		client:  newHTTPClient(timeout),
	}
}

type authorizeRequest struct {
	CustomerID string  `json:"customerId"`
	Amount     float64 `json:"amount"`
}

type authorizeResponse struct {
	Authorized    bool   `json:"authorized"`
	TransactionID string `json:"transactionId"`
}

type cancelRequest struct {
	CustomerID    string `json:"customerId"`
	TransactionID string `json:"transactionId"`
}

// Authorize requests payment authorization for the given amount. Each call
// carries a fresh idempotency key so the payment system can deduplicate
// deliveries without this core retrying.
func (c *PaymentClient) Authorize(ctx context.Context, customerID string, amount float64) (checkout.Authorization, error) {
	req := authorizeRequest{CustomerID: customerID, Amount: amount}
	headers := map[string]string{"Idempotency-Key": uuid.New().String()}

	var resp authorizeResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/authorize", headers, req, &resp); err != nil {
		return checkout.Authorization{}, errors.Wrap(err, "payment authorize")
	}

	return checkout.Authorization{
		Authorized:    resp.Authorized,
		TransactionID: resp.TransactionID,
	}, nil
}

// Cancel voids a previously authorized payment.
func (c *PaymentClient) Cancel(ctx context.Context, customerID, transactionID string) error {
	req := cancelRequest{CustomerID: customerID, TransactionID: transactionID}

	if err := postJSON(ctx, c.client, c.baseURL+"/cancel", nil, req, nil); err != nil {
		return errors.Wrap(err, "payment cancel")
	}
	return nil
}
