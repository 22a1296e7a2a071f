package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Unit price,
// physical weight and fragility feed the pricing engine; the catalog is
// read-only from the checkout core's perspective.
type Product struct {
	ID      string
	Name    string
	Price   decimal.Decimal
	Weight  float64
	Fragile bool
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
