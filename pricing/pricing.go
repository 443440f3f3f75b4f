// Package pricing computes cart totals. All arithmetic runs on
// decimal.Decimal; values are rounded to two places half-up only when a
// Quote is assembled, never mid-calculation.
package pricing

import (
	"github.com/shopspring/decimal"

	"foodie-api/models"
)

// TaxRate is the flat GST applied on the subtotal.
var TaxRate = decimal.NewFromFloat(0.05)

// Delivery fee policy: subtotal-threshold rule. Orders under the threshold
// pay a flat fee, orders at or above it ship free. The per-restaurant
// deliveryFee column is catalog display data and does not drive checkout.
var (
	FreeDeliveryThreshold = decimal.NewFromInt(150)
	DeliveryFlatFee       = decimal.NewFromInt(50)
)

// Quote is the priced breakdown of a cart.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Taxes       decimal.Decimal `json:"taxes"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// UnitPrice returns the effective per-unit price of a dish: base price plus
// every selected customization option.
func UnitPrice(dish *models.Dish, customizations []models.SelectedCustomization) decimal.Decimal {
	price := dish.Price
	for _, group := range customizations {
		for _, opt := range group.SelectedOptions {
			price = price.Add(opt.Price)
		}
	}
	return price
}

// Subtotal sums unitPrice x quantity over the line items.
func Subtotal(items []models.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// DeliveryFee applies the threshold policy. Empty carts owe nothing.
func DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsPositive() && subtotal.LessThan(FreeDeliveryThreshold) {
		return DeliveryFlatFee
	}
	return decimal.Zero
}

// Discount computes the coupon discount against an order amount. Percentage
// coupons are capped by maxDiscount when set; flat coupons never exceed the
// order amount. The coupon must already have passed validation.
func Discount(c *models.Coupon, orderAmount decimal.Decimal) decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	switch c.DiscountType {
	case models.DiscountPercentage:
		d := orderAmount.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
		if c.MaxDiscount != nil && d.GreaterThan(*c.MaxDiscount) {
			d = *c.MaxDiscount
		}
		return d
	case models.DiscountFlat:
		if c.DiscountValue.GreaterThan(orderAmount) {
			return orderAmount
		}
		return c.DiscountValue
	}
	return decimal.Zero
}

// Price builds the full quote for a set of line items with an optional
// validated coupon. Invariants: discount never exceeds the pre-discount
// total, total never goes negative, delivery fee is never negative.
func Price(items []models.OrderItem, coupon *models.Coupon) Quote {
	subtotal := Subtotal(items)
	fee := DeliveryFee(subtotal)
	taxes := subtotal.Mul(TaxRate)

	discount := Discount(coupon, subtotal)
	gross := subtotal.Add(fee).Add(taxes)
	if discount.GreaterThan(gross) {
		discount = gross
	}

	total := gross.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{
		Subtotal:    round(subtotal),
		DeliveryFee: round(fee),
		Taxes:       round(taxes),
		Discount:    round(discount),
		Total:       round(total),
	}
}

// round formats money at the boundary: two decimal places, half-up.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
