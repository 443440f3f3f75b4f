package models

import "github.com/shopspring/decimal"

// DeliveryPartner holds rider profile and live availability state. Exactly
// one record per user.
type DeliveryPartner struct {
	ID               string          `json:"id" gorm:"primaryKey;size:128"`
	UserID           string          `json:"userId" gorm:"uniqueIndex;not null"`
	VehicleType      string          `json:"vehicleType" gorm:"not null"` // bike, scooter, bicycle
	VehicleNumber    string          `json:"vehicleNumber"`
	IsOnline         bool            `json:"isOnline" gorm:"default:false"`
	IsAvailable      bool            `json:"isAvailable" gorm:"default:true"`
	CurrentLatitude  *float64        `json:"currentLatitude,omitempty"`
	CurrentLongitude *float64        `json:"currentLongitude,omitempty"`
	TotalDeliveries  int             `json:"totalDeliveries" gorm:"default:0"`
	Rating           decimal.Decimal `json:"rating"`
	TotalEarnings    decimal.Decimal `json:"totalEarnings"`
}
