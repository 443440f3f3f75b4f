package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodie-api/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(unitPrice string, qty int) models.OrderItem {
	return models.OrderItem{UnitPrice: dec(unitPrice), Quantity: qty}
}

func TestSubtotalIsExactSumOfLines(t *testing.T) {
	items := []models.OrderItem{
		item("299", 2),
		item("249.50", 1),
		item("49.99", 3),
	}
	// 598 + 249.50 + 149.97
	assert.True(t, dec("997.47").Equal(Subtotal(items)))
}

func TestUnitPriceIncludesSelectedOptions(t *testing.T) {
	dish := &models.Dish{Price: dec("299")}
	customizations := []models.SelectedCustomization{
		{Name: "Size", SelectedOptions: []models.CustomizationOption{{Name: "Large", Price: dec("100")}}},
		{Name: "Extra Toppings", SelectedOptions: []models.CustomizationOption{
			{Name: "Extra Cheese", Price: dec("50")},
			{Name: "Olives", Price: dec("30")},
		}},
	}
	assert.True(t, dec("479").Equal(UnitPrice(dish, customizations)))
}

func TestDeliveryFeeThresholdPolicy(t *testing.T) {
	tests := []struct {
		subtotal string
		fee      string
	}{
		{"0", "0"},        // empty cart owes nothing
		{"1", "50"},
		{"149.99", "50"},
		{"150", "0"},
		{"500", "0"},
	}
	for _, tt := range tests {
		assert.True(t, dec(tt.fee).Equal(DeliveryFee(dec(tt.subtotal))),
			"subtotal %s should carry fee %s", tt.subtotal, tt.fee)
	}
}

func TestTaxesRoundHalfUpAtBoundary(t *testing.T) {
	// 10.10 * 5% = 0.505 -> 0.51 under half-up
	quote := Price([]models.OrderItem{item("10.10", 1)}, nil)
	assert.Equal(t, "0.51", quote.Taxes.StringFixed(2))
}

func TestPercentageDiscountCappedByMaxDiscount(t *testing.T) {
	first50 := &models.Coupon{
		DiscountType:  models.DiscountPercentage,
		DiscountValue: dec("50"),
		MaxDiscount:   maxDiscount("100"),
	}

	// 150 * 50% = 75, under the 100 cap
	assert.True(t, dec("75").Equal(Discount(first50, dec("150"))))
	// 300 * 50% = 150, capped at 100
	assert.True(t, dec("100").Equal(Discount(first50, dec("300"))))
}

func TestFlatDiscountClampedToOrderAmount(t *testing.T) {
	flat100 := &models.Coupon{
		DiscountType:  models.DiscountFlat,
		DiscountValue: dec("100"),
	}
	assert.True(t, dec("100").Equal(Discount(flat100, dec("350"))))
	assert.True(t, dec("60").Equal(Discount(flat100, dec("60"))))
}

func TestNilCouponMeansNoDiscount(t *testing.T) {
	assert.True(t, Discount(nil, dec("500")).IsZero())
}

func TestQuoteIdentityAndFloor(t *testing.T) {
	items := []models.OrderItem{item("249", 2)} // subtotal 498, free delivery
	coupon := &models.Coupon{
		DiscountType:  models.DiscountPercentage,
		DiscountValue: dec("50"),
		MaxDiscount:   maxDiscount("100"),
	}
	quote := Price(items, coupon)

	require.True(t, dec("498").Equal(quote.Subtotal))
	require.True(t, quote.DeliveryFee.IsZero())
	require.True(t, dec("24.90").Equal(quote.Taxes))
	require.True(t, dec("100").Equal(quote.Discount))

	sum := quote.Subtotal.Add(quote.DeliveryFee).Add(quote.Taxes).Sub(quote.Discount)
	assert.True(t, sum.Equal(quote.Total))
	assert.False(t, quote.Total.IsNegative())
}

func TestDiscountNeverExceedsGrossTotal(t *testing.T) {
	items := []models.OrderItem{item("40", 1)} // subtotal 40, fee 50, taxes 2
	coupon := &models.Coupon{
		DiscountType:  models.DiscountFlat,
		DiscountValue: dec("500"),
	}
	quote := Price(items, coupon)

	gross := quote.Subtotal.Add(quote.DeliveryFee).Add(quote.Taxes)
	assert.True(t, quote.Discount.LessThanOrEqual(gross))
	assert.True(t, quote.Total.IsZero() || quote.Total.IsPositive())
}

func maxDiscount(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
