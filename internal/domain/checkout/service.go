package checkout

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/storesys/checkout/internal/domain/cart"
	"github.com/storesys/checkout/internal/domain/customer"
	"github.com/storesys/checkout/internal/domain/pricing"
)

// Service sequences the checkout saga. It depends only on the repository
// and gateway contracts, never on concrete implementations.
type Service struct {
	customers customer.Repository
	carts     cart.Repository
	inventory InventoryGateway
	payments  PaymentGateway
}

// NewService creates a checkout Service with the required collaborators.
func NewService(
	customers customer.Repository,
	carts cart.Repository,
	inventory InventoryGateway,
	payments PaymentGateway,
) *Service {
	return &Service{
		customers: customers,
		carts:     carts,
		inventory: inventory,
		payments:  payments,
	}
}

// FinalizeCheckout resolves the customer and cart, verifies availability,
// computes the total, authorizes payment, and decrements stock, in that
// order. Every failure aborts the remaining steps immediately. A failed
// decrement is the only step with a side effect behind it, so it triggers
// the compensating payment cancellation before the error is returned.
func (s *Service) FinalizeCheckout(ctx context.Context, cartID, customerID string) (*Outcome, error) {
	cust, err := s.customers.Find(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "resolve customer")
	}

	c, err := s.carts.FindByIDAndCustomer(ctx, cartID, cust.ID)
	if err != nil {
		return nil, errors.Wrap(err, "resolve cart")
	}

	// Parallel slices: index i in both refers to the same cart line.
	// Downstream calls rely on this exact pairing.
	productIDs := make([]string, len(c.Items))
	quantities := make([]int, len(c.Items))
	for i, item := range c.Items {
		productIDs[i] = item.Product.ID
		quantities[i] = item.Quantity
	}

	availability, err := s.inventory.CheckAvailability(ctx, productIDs, quantities)
	if err != nil {
		return nil, errors.Wrap(err, "check availability")
	}
	if !availability.Available {
		return nil, &OutOfStockError{ProductIDs: availability.UnavailableProductIDs}
	}

	total := pricing.ComputeTotal(c, cust.Region, cust.Tier)

	// The payment system speaks float64.
	auth, err := s.payments.Authorize(ctx, cust.ID, total.InexactFloat64())
	if err != nil {
		return nil, errors.Wrap(err, "authorize payment")
	}
	if !auth.Authorized {
		return nil, ErrPaymentDeclined
	}

	result, err := s.inventory.Decrement(ctx, productIDs, quantities)
	if err != nil || !result.Succeeded {
		s.cancelPayment(ctx, cust.ID, auth.TransactionID)
		if err != nil {
			return nil, errors.Wrap(err, "decrement stock")
		}
		return nil, &DecrementFailedError{TransactionID: auth.TransactionID}
	}

	return &Outcome{
		Success:       true,
		TransactionID: auth.TransactionID,
		Message:       "purchase completed successfully",
	}, nil
}

// cancelPayment compensates an authorized payment after a failed decrement.
// The checkout fails either way; a cancellation failure means the charge
// still stands and needs manual reconciliation, so it is logged loudly
// instead of being surfaced as a distinct error.
func (s *Service) cancelPayment(ctx context.Context, customerID, transactionID string) {
	if err := s.payments.Cancel(ctx, customerID, transactionID); err != nil {
		zctx.From(ctx).Error("payment cancellation failed, manual reconciliation required",
			zap.String("customer_id", customerID),
			zap.String("transaction_id", transactionID),
			zap.Error(err),
		)
	}
}
