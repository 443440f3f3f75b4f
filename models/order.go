package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of a food delivery order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentUPI    PaymentMethod = "upi"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
	PaymentCOD    PaymentMethod = "cod"
)

type Order struct {
	ID                      string          `json:"id" gorm:"primaryKey;size:128"`
	UserID                  string          `json:"userId" gorm:"index;not null"`
	RestaurantID            string          `json:"restaurantId" gorm:"index;not null"`
	DeliveryPartnerID       *string         `json:"deliveryPartnerId,omitempty" gorm:"index"`
	AddressID               *string         `json:"addressId,omitempty"`
	DeliveryAddress         string          `json:"deliveryAddress" gorm:"not null"`
	Status                  OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	Items                   []OrderItem     `json:"items" gorm:"serializer:json"`
	Subtotal                decimal.Decimal `json:"subtotal" gorm:"not null"`
	DeliveryFee             decimal.Decimal `json:"deliveryFee" gorm:"not null"`
	Taxes                   decimal.Decimal `json:"taxes" gorm:"not null"`
	Discount                decimal.Decimal `json:"discount"`
	Total                   decimal.Decimal `json:"total" gorm:"not null"`
	CouponCode              string          `json:"couponCode,omitempty"`
	PaymentMethod           PaymentMethod   `json:"paymentMethod" gorm:"not null"`
	PaymentStatus           string          `json:"paymentStatus" gorm:"default:'pending'"`
	SpecialInstructions     string          `json:"specialInstructions,omitempty"`
	EstimatedDeliveryTime   int             `json:"estimatedDeliveryTime,omitempty"` // minutes
	DeliveryPartnerLocation *LatLng         `json:"deliveryPartnerLocation,omitempty" gorm:"serializer:json"`
	CreatedAt               time.Time       `json:"createdAt"`
	AcceptedAt              *time.Time      `json:"acceptedAt,omitempty"`
	PreparingAt             *time.Time      `json:"preparingAt,omitempty"`
	ReadyAt                 *time.Time      `json:"readyAt,omitempty"`
	PickedUpAt              *time.Time      `json:"pickedUpAt,omitempty"`
	DeliveredAt             *time.Time      `json:"deliveredAt,omitempty"`
}

// OrderItem is a frozen line-item snapshot taken at checkout. It is never
// re-derived from the live catalog.
type OrderItem struct {
	DishID              string                  `json:"dishId"`
	DishName            string                  `json:"dishName"`
	Quantity            int                     `json:"quantity"`
	UnitPrice           decimal.Decimal         `json:"unitPrice"`
	TotalPrice          decimal.Decimal         `json:"totalPrice"`
	Customizations      []SelectedCustomization `json:"customizations,omitempty"`
	SpecialInstructions string                  `json:"specialInstructions,omitempty"`
	ImageURL            string                  `json:"imageUrl,omitempty"`
}

// SelectedCustomization records the options a customer picked for one group.
type SelectedCustomization struct {
	Name            string                `json:"name"`
	SelectedOptions []CustomizationOption `json:"selectedOptions"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TimestampFor returns the pointer to the bookkeeping field stamped when the
// order enters the given status, or nil if the status has no timestamp.
func (o *Order) TimestampFor(status OrderStatus) **time.Time {
	switch status {
	case StatusAccepted:
		return &o.AcceptedAt
	case StatusPreparing:
		return &o.PreparingAt
	case StatusReady:
		return &o.ReadyAt
	case StatusPickedUp:
		return &o.PickedUpAt
	case StatusDelivered:
		return &o.DeliveredAt
	}
	return nil
}
