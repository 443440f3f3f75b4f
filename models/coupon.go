package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

// Coupon codes are unique case-insensitively; the store uppercases them
// before persisting. A nil RestaurantID means the coupon is global.
type Coupon struct {
	ID             string           `json:"id" gorm:"primaryKey;size:128"`
	Code           string           `json:"code" gorm:"uniqueIndex;not null"`
	Description    string           `json:"description"`
	DiscountType   DiscountType     `json:"discountType" gorm:"not null"`
	DiscountValue  decimal.Decimal  `json:"discountValue" gorm:"not null"`
	MinOrderAmount decimal.Decimal  `json:"minOrderAmount"`
	MaxDiscount    *decimal.Decimal `json:"maxDiscount,omitempty"`
	RestaurantID   *string          `json:"restaurantId,omitempty"`
	UsageLimit     *int             `json:"usageLimit,omitempty"`
	UsedCount      int              `json:"usedCount" gorm:"default:0"`
	ValidFrom      *time.Time       `json:"validFrom,omitempty"`
	ValidUntil     *time.Time       `json:"validUntil,omitempty"`
	IsActive       bool             `json:"isActive" gorm:"default:true"`
}
