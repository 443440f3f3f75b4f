package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodie-api/models"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func activeCoupon() *models.Coupon {
	return &models.Coupon{
		Code:           "FIRST50",
		DiscountType:   models.DiscountPercentage,
		DiscountValue:  decimal.NewFromInt(50),
		MinOrderAmount: decimal.NewFromInt(100),
		IsActive:       true,
	}
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	require.Error(t, err)
	rej, ok := err.(*RejectionError)
	require.True(t, ok, "expected *RejectionError, got %T", err)
	return rej.Reason
}

func TestValidateAcceptsEligibleCoupon(t *testing.T) {
	assert.NoError(t, Validate(activeCoupon(), decimal.NewFromInt(150), "rest-1", now))
}

func TestValidateNilCouponIsNotFound(t *testing.T) {
	err := Validate(nil, decimal.NewFromInt(500), "rest-1", now)
	assert.Equal(t, ReasonNotFound, reasonOf(t, err))
}

func TestValidateInactive(t *testing.T) {
	c := activeCoupon()
	c.IsActive = false
	err := Validate(c, decimal.NewFromInt(500), "rest-1", now)
	assert.Equal(t, ReasonInactive, reasonOf(t, err))
}

func TestValidateBelowMinimum(t *testing.T) {
	err := Validate(activeCoupon(), decimal.NewFromInt(99), "rest-1", now)
	assert.Equal(t, ReasonBelowMinimum, reasonOf(t, err))

	// exactly at the minimum is fine
	assert.NoError(t, Validate(activeCoupon(), decimal.NewFromInt(100), "rest-1", now))
}

func TestValidateRestaurantScope(t *testing.T) {
	scope := "rest-1"
	c := activeCoupon()
	c.RestaurantID = &scope

	assert.NoError(t, Validate(c, decimal.NewFromInt(200), "rest-1", now))
	err := Validate(c, decimal.NewFromInt(200), "rest-2", now)
	assert.Equal(t, ReasonWrongRestaurant, reasonOf(t, err))
}

func TestValidateUsageExhausted(t *testing.T) {
	limit := 10
	c := activeCoupon()
	c.UsageLimit = &limit
	c.UsedCount = 10
	err := Validate(c, decimal.NewFromInt(200), "rest-1", now)
	assert.Equal(t, ReasonUsageExhausted, reasonOf(t, err))

	c.UsedCount = 9
	assert.NoError(t, Validate(c, decimal.NewFromInt(200), "rest-1", now))
}

func TestValidateTimeWindow(t *testing.T) {
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	c := activeCoupon()
	c.ValidFrom = &future
	err := Validate(c, decimal.NewFromInt(200), "rest-1", now)
	assert.Equal(t, ReasonNotStarted, reasonOf(t, err))

	c = activeCoupon()
	c.ValidUntil = &past
	err = Validate(c, decimal.NewFromInt(200), "rest-1", now)
	assert.Equal(t, ReasonExpired, reasonOf(t, err))
}

// The first failing rule wins: an inactive coupon that is also below the
// minimum reports inactive, not below_minimum.
func TestValidateRuleOrder(t *testing.T) {
	c := activeCoupon()
	c.IsActive = false
	err := Validate(c, decimal.NewFromInt(10), "rest-1", now)
	assert.Equal(t, ReasonInactive, reasonOf(t, err))
}
