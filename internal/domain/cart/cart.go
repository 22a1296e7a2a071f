package cart

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/storesys/checkout/internal/domain/product"
)

// ErrNotFound is returned when a cart does not exist or does not belong
// to the given customer.
var ErrNotFound = errors.New("cart not found")

// Cart holds the line items a customer intends to purchase. Carts are
// created before checkout begins and are read-only to the checkout core.
type Cart struct {
	ID         string
	CustomerID string
	Items      []Item
}

// Item is a single cart line: a resolved product and a positive quantity.
type Item struct {
	Product  product.Product
	Quantity int
}

// Repository defines lookup operations for shopping carts.
type Repository interface {
	// FindByIDAndCustomer returns the cart with the given ID only when it
	// is owned by the given customer. Item order is the insertion order.
	FindByIDAndCustomer(ctx context.Context, cartID, customerID string) (*Cart, error)
}
