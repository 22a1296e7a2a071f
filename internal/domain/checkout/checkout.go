// Package checkout coordinates purchase finalization across the inventory
// and payment systems.
//
// The two systems do not share a transactional boundary, so the sequence is
// a compensating saga: availability is checked before any side effect,
// payment is authorized before stock is decremented, and a failed decrement
// triggers cancellation of the already-authorized payment. The compensation
// is best effort; it undoes the side effect but never converts the failed
// checkout into a success.
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

// ErrPaymentDeclined is returned when the payment system refuses to
// authorize the computed total.
var ErrPaymentDeclined = errors.New("payment not authorized")

// OutOfStockError indicates the inventory system reported one or more
// requested products as unavailable. No side effect has occurred.
type OutOfStockError struct {
	ProductIDs []string
}

func (e *OutOfStockError) Error() string {
	if len(e.ProductIDs) == 0 {
		return "items out of stock"
	}
	return fmt.Sprintf("items out of stock: %s", strings.Join(e.ProductIDs, ", "))
}

// DecrementFailedError indicates the post-payment stock decrement failed.
// The authorized payment has been cancelled (or cancellation was attempted)
// before this error is returned.
type DecrementFailedError struct {
	TransactionID string
}

func (e *DecrementFailedError) Error() string {
	return fmt.Sprintf("inventory decrement failed for transaction %s", e.TransactionID)
}

// Availability is the inventory system's answer to an availability check.
type Availability struct {
	Available             bool
	UnavailableProductIDs []string
}

// DecrementResult is the inventory system's answer to a stock decrement.
type DecrementResult struct {
	Succeeded bool
}

// Authorization is the payment system's answer to an authorization request.
// TransactionID is set only when Authorized is true.
type Authorization struct {
	Authorized    bool
	TransactionID string
}

// InventoryGateway is the capability set this core consumes from the
// inventory system. Product IDs and quantities are parallel slices: index i
// in both refers to the same cart line.
type InventoryGateway interface {
	CheckAvailability(ctx context.Context, productIDs []string, quantities []int) (Availability, error)
	Decrement(ctx context.Context, productIDs []string, quantities []int) (DecrementResult, error)
}

// PaymentGateway is the capability set this core consumes from the payment
// system. Cancel is fire-and-forget: its failure is logged but never
// retried here.
type PaymentGateway interface {
	Authorize(ctx context.Context, customerID string, amount float64) (Authorization, error)
	Cancel(ctx context.Context, customerID, transactionID string) error
}

// Outcome is the result of a completed checkout. TransactionID is set only
// on success.
type Outcome struct {
	Success       bool
	TransactionID string
	Message       string
}
