package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/storesys/checkout/internal/domain/cart"
	"github.com/storesys/checkout/internal/domain/customer"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func line(id, price string, weight float64, fragile bool, qty int) cart.Item {
	it := cart.Item{Quantity: qty}
	it.Product.ID = id
	it.Product.Name = id
	it.Product.Price = d(price)
	it.Product.Weight = weight
	it.Product.Fragile = fragile
	return it
}

func cartOf(items ...cart.Item) *cart.Cart {
	return &cart.Cart{ID: "c1", CustomerID: "u1", Items: items}
}

func assertTotal(t *testing.T, want string, c *cart.Cart) {
	t.Helper()
	got := ComputeTotal(c, customer.RegionSoutheast, customer.TierBronze)
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestComputeTotal_EmptyCart(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(ComputeTotal(nil, customer.RegionSouth, customer.TierGold)))
	assert.True(t, decimal.Zero.Equal(ComputeTotal(&cart.Cart{ID: "c1"}, customer.RegionSouth, customer.TierGold)))
	assert.True(t, decimal.Zero.Equal(ComputeTotal(cartOf(), customer.RegionSouth, customer.TierGold)))
}

func TestComputeTotal_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		items []cart.Item
		want  string
	}{
		{
			name:  "single cheap light item, no discount, free freight",
			items: []cart.Item{line("p1", "100.00", 2.0, false, 1)},
			want:  "100.00",
		},
		{
			name: "mid tier discount with light freight band",
			// 600 - 10% = 540, freight 8 * 2.00 = 16
			items: []cart.Item{line("p1", "600.00", 8.0, false, 1)},
			want:  "556.00",
		},
		{
			name: "heavy fragile item",
			// no discount; freight 60 * 7.00 = 420, +5.00 fragile
			items: []cart.Item{line("p1", "100.00", 60.0, true, 1)},
			want:  "525.00",
		},
		{
			name: "quantity multiplies price weight and fragility",
			// subtotal 3*200 = 600 -> -10% = 540; weight 3*4 = 12 -> 12*4 = 48;
			// fragile units 3 -> 15
			items: []cart.Item{line("p1", "200.00", 4.0, true, 3)},
			want:  "603.00",
		},
		{
			name: "top discount tier",
			// 1500 - 20% = 1200, weight 4 exempt
			items: []cart.Item{line("p1", "1500.00", 4.0, false, 1)},
			want:  "1200.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTotal(t, tt.want, cartOf(tt.items...))
		})
	}
}

func TestComputeTotal_DiscountBoundaries(t *testing.T) {
	tests := []struct {
		subtotal string
		want     string
	}{
		// Lower bounds are inclusive: exactly 500 earns 10%, exactly 1000 earns 20%.
		{"499.99", "499.99"},
		{"500.00", "450.00"},
		{"999.99", "899.99"},  // 999.99 * 0.9 = 899.991 -> 899.99 half-up
		{"1000.00", "800.00"},
	}
	for _, tt := range tests {
		t.Run(tt.subtotal, func(t *testing.T) {
			// Weight 1 keeps freight out of the picture.
			assertTotal(t, tt.want, cartOf(line("p1", tt.subtotal, 1.0, false, 1)))
		})
	}
}

func TestComputeTotal_FreightBoundaries(t *testing.T) {
	tests := []struct {
		weight float64
		want   string
	}{
		// Equality stays in the cheaper band; strictly greater crosses.
		{5.0, "10.00"},    // exempt
		{5.01, "20.02"},   // 5.01 * 2.00
		{10.0, "30.00"},   // 10 * 2.00
		{10.01, "50.04"},  // 10.01 * 4.00
		{50.0, "210.00"},  // 50 * 4.00
		{50.01, "360.07"}, // 50.01 * 7.00
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assertTotal(t, tt.want, cartOf(line("p1", "10.00", tt.weight, false, 1)))
		})
	}
}

func TestComputeTotal_FragileSurchargePerUnit(t *testing.T) {
	// Two fragile lines with quantities 3 and 1: surcharge for 4 units,
	// not 2 lines. Subtotal 3*10 + 1*10 = 40; weights 4*1 = 4, exempt.
	c := cartOf(
		line("p1", "10.00", 1.0, true, 3),
		line("p2", "10.00", 1.0, true, 1),
	)
	assertTotal(t, "60.00", c)
}

func TestComputeTotal_OrderInvariant(t *testing.T) {
	a := line("p1", "320.00", 3.5, true, 2)
	b := line("p2", "89.90", 12.0, false, 1)
	c := line("p3", "45.50", 0.2, true, 4)

	first := ComputeTotal(cartOf(a, b, c), customer.RegionNorth, customer.TierSilver)
	second := ComputeTotal(cartOf(c, a, b), customer.RegionNorth, customer.TierSilver)
	third := ComputeTotal(cartOf(b, c, a), customer.RegionNorth, customer.TierSilver)

	assert.True(t, first.Equal(second))
	assert.True(t, second.Equal(third))
}

func TestComputeTotal_RegionAndTierDoNotAlterResult(t *testing.T) {
	c := cartOf(line("p1", "750.00", 20.0, true, 2))

	base := ComputeTotal(c, customer.RegionSoutheast, customer.TierBronze)
	for _, region := range []customer.Region{customer.RegionSouth, customer.RegionNorth, customer.RegionMidwest} {
		for _, tier := range []customer.Tier{customer.TierSilver, customer.TierGold} {
			assert.True(t, base.Equal(ComputeTotal(c, region, tier)))
		}
	}
}
