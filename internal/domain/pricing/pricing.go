// Package pricing computes the monetary total owed for a cart.
//
// The computation is a pure function of the cart contents: a subtotal with
// a tiered discount, a freight charge by total weight, and a flat surcharge
// per fragile unit. All monetary arithmetic uses exact decimals; the final
// total is rounded to 2 fractional places, half-up.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/storesys/checkout/internal/domain/cart"
	"github.com/storesys/checkout/internal/domain/customer"
)

// Discount tiers applied to the subtotal. Only the single highest
// applicable tier applies; boundaries are inclusive on the lower bound.
var (
	discountHighThreshold = decimal.RequireFromString("1000.00")
	discountLowThreshold  = decimal.RequireFromString("500.00")
	discountHighRate      = decimal.RequireFromString("0.20")
	discountLowRate       = decimal.RequireFromString("0.10")
)

// Freight rates per weight unit. The rate for the band containing the
// total weight applies to the full weight, not incrementally per band.
// Equality at a boundary stays in the cheaper band.
var (
	freightHeavyRate  = decimal.RequireFromString("7.00")
	freightMediumRate = decimal.RequireFromString("4.00")
	freightLightRate  = decimal.RequireFromString("2.00")
)

// fragileUnitFee is charged once per fragile unit of quantity.
var fragileUnitFee = decimal.RequireFromString("5.00")

// ComputeTotal returns the total owed for the cart. Region and tier are
// accepted for forward compatibility but do not currently alter the rate
// tables. A nil cart or one without items costs exactly zero; item order
// never affects the result.
func ComputeTotal(c *cart.Cart, _ customer.Region, _ customer.Tier) decimal.Decimal {
	if c == nil || len(c.Items) == 0 {
		return decimal.Zero
	}

	subtotal := decimal.Zero
	totalWeight := 0.0
	fragileUnits := int64(0)

	for _, item := range c.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(item.Product.Price.Mul(qty))
		totalWeight += item.Product.Weight * float64(item.Quantity)
		if item.Product.Fragile {
			fragileUnits += int64(item.Quantity)
		}
	}

	discounted := subtotal.Sub(discountFor(subtotal))

	freight := freightFor(totalWeight)
	if fragileUnits > 0 {
		freight = freight.Add(fragileUnitFee.Mul(decimal.NewFromInt(fragileUnits)))
	}

	return discounted.Add(freight).Round(2)
}

// discountFor returns the discount amount for the given subtotal.
// Thresholds are inclusive: exactly 500.00 earns 10%, exactly 1000.00
// earns 20%.
func discountFor(subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case subtotal.GreaterThanOrEqual(discountHighThreshold):
		return subtotal.Mul(discountHighRate)
	case subtotal.GreaterThanOrEqual(discountLowThreshold):
		return subtotal.Mul(discountLowRate)
	default:
		return decimal.Zero
	}
}

// freightFor returns the freight charge for the given total weight.
// Crossing into a more expensive band requires strictly exceeding its
// lower boundary; weights up to 5 ship free.
func freightFor(weight float64) decimal.Decimal {
	w := decimal.NewFromFloat(weight)
	switch {
	case weight > 50:
		return w.Mul(freightHeavyRate)
	case weight > 10:
		return w.Mul(freightMediumRate)
	case weight > 5:
		return w.Mul(freightLightRate)
	default:
		return decimal.Zero
	}
}
