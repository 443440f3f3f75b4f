// Package coupon holds the eligibility rules for discount coupons. The rules
// run in a fixed order and the first failure wins, so the caller always gets
// the most specific rejection reason.
package coupon

import (
	"time"

	"github.com/shopspring/decimal"

	"foodie-api/models"
)

// Reason identifies why a coupon was rejected.
type Reason string

const (
	ReasonNotFound        Reason = "not_found"
	ReasonInactive        Reason = "inactive"
	ReasonBelowMinimum    Reason = "below_minimum"
	ReasonWrongRestaurant Reason = "restaurant_scoped"
	ReasonUsageExhausted  Reason = "usage_exhausted"
	ReasonNotStarted      Reason = "not_started"
	ReasonExpired         Reason = "expired"
)

// RejectionError carries the specific reason so the client can explain the
// failure to the user.
type RejectionError struct {
	Reason  Reason
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func reject(reason Reason, msg string) error {
	return &RejectionError{Reason: reason, Message: msg}
}

// Validate checks a coupon against a proposed order amount and restaurant
// scope. A nil coupon means the code did not resolve. Validation never
// mutates the coupon; usedCount is incremented only on order creation.
func Validate(c *models.Coupon, orderAmount decimal.Decimal, restaurantID string, now time.Time) error {
	if c == nil {
		return reject(ReasonNotFound, "coupon code not found")
	}
	if !c.IsActive {
		return reject(ReasonInactive, "coupon is no longer active")
	}
	if orderAmount.LessThan(c.MinOrderAmount) {
		return reject(ReasonBelowMinimum,
			"order amount "+orderAmount.StringFixed(2)+" is below the coupon minimum of "+c.MinOrderAmount.StringFixed(2))
	}
	if c.RestaurantID != nil && *c.RestaurantID != restaurantID {
		return reject(ReasonWrongRestaurant, "coupon is not valid for this restaurant")
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return reject(ReasonUsageExhausted, "coupon usage limit reached")
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return reject(ReasonNotStarted, "coupon is not active yet")
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return reject(ReasonExpired, "coupon has expired")
	}
	return nil
}
