package customer

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested customer does not exist.
var ErrNotFound = errors.New("customer not found")

// Region is the customer's shipping region.
//
// Region is accepted by the pricing engine but does not currently alter
// the computed total; region-based freight multipliers are a pending
// extension of the rate tables.
type Region string

const (
	RegionSoutheast Region = "southeast"
	RegionSouth     Region = "south"
	RegionNorth     Region = "north"
	RegionNortheast Region = "northeast"
	RegionMidwest   Region = "midwest"
)

// Tier is the customer's loyalty classification.
//
// Like Region, Tier is threaded through the pricing engine without
// affecting the result yet.
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Customer identifies a registered buyer together with the classification
// attributes the pricing engine accepts.
type Customer struct {
	ID     string
	Region Region
	Tier   Tier
}

// Repository defines lookup operations for customers.
type Repository interface {
	Find(ctx context.Context, id string) (*Customer, error)
}
