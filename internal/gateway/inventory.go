package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/storesys/checkout/internal/domain/checkout"
)

var _ checkout.InventoryGateway = (*InventoryClient)(nil)

// InventoryClient is the HTTP adapter for the external inventory system.
type InventoryClient struct {
	baseURL string
	client  *http.Client
}

// NewInventoryClient creates an InventoryClient for the given base URL.
func NewInventoryClient(baseURL string, timeout time.Duration) *InventoryClient {
	return &InventoryClient{
		baseURL: baseURL,
		client:  newHTTPClient(timeout),
	}
}

type inventoryRequest struct {
	ProductIDs []string `json:"productIds"`
	Quantities []int    `json:"quantities"`
}

type availabilityResponse struct {
	Available             bool     `json:"available"`
	UnavailableProductIDs []string `json:"unavailableProductIds"`
}

type decrementResponse struct {
	Succeeded bool `json:"succeeded"`
}

// CheckAvailability asks the inventory system whether every requested
// quantity can be fulfilled. The two slices are index-aligned and are
// passed through unchanged.
func (c *InventoryClient) CheckAvailability(ctx context.Context, productIDs []string, quantities []int) (checkout.Availability, error) {
	req := inventoryRequest{ProductIDs: productIDs, Quantities: quantities}

	var resp availabilityResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/availability", nil, req, &resp); err != nil {
		return checkout.Availability{}, errors.Wrap(err, "inventory availability")
	}

	return checkout.Availability{
		Available:             resp.Available,
		UnavailableProductIDs: resp.UnavailableProductIDs,
	}, nil
}

// Decrement asks the inventory system to deduct the requested quantities.
func (c *InventoryClient) Decrement(ctx context.Context, productIDs []string, quantities []int) (checkout.DecrementResult, error) {
	req := inventoryRequest{ProductIDs: productIDs, Quantities: quantities}

	var resp decrementResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/decrement", nil, req, &resp); err != nil {
		return checkout.DecrementResult{}, errors.Wrap(err, "inventory decrement")
	}

	return checkout.DecrementResult{Succeeded: resp.Succeeded}, nil
}
