package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID             string          `json:"id" gorm:"primaryKey;size:128"`
	OwnerID        *string         `json:"ownerId,omitempty" gorm:"index"`
	Name           string          `json:"name" gorm:"not null"`
	Description    string          `json:"description"`
	Cuisines       []string        `json:"cuisines" gorm:"serializer:json"`
	ImageURL       string          `json:"imageUrl"`
	CoverImageURL  string          `json:"coverImageUrl"`
	Address        string          `json:"address" gorm:"not null"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Rating         decimal.Decimal `json:"rating"`
	ReviewCount    int             `json:"reviewCount" gorm:"default:0"`
	PriceRange     int             `json:"priceRange" gorm:"default:2"`    // 1-4
	DeliveryTime   int             `json:"deliveryTime" gorm:"default:30"` // minutes
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount"`
	IsVeg          bool            `json:"isVeg" gorm:"default:false"`
	IsOpen         bool            `json:"isOpen" gorm:"default:true"`
	OpeningTime    string          `json:"openingTime" gorm:"default:'09:00'"`
	ClosingTime    string          `json:"closingTime" gorm:"default:'22:00'"`
	HasOffers      bool            `json:"hasOffers" gorm:"default:false"`
	OfferText      string          `json:"offerText"`
}

// MenuCategory groups dishes; listings are sorted by SortOrder ascending.
type MenuCategory struct {
	ID           string `json:"id" gorm:"primaryKey;size:128"`
	RestaurantID string `json:"restaurantId" gorm:"index;not null"`
	Name         string `json:"name" gorm:"not null"`
	Description  string `json:"description"`
	SortOrder    int    `json:"sortOrder" gorm:"default:0"`
}

type Dish struct {
	ID              string              `json:"id" gorm:"primaryKey;size:128"`
	RestaurantID    string              `json:"restaurantId" gorm:"index;not null"`
	CategoryID      *string             `json:"categoryId,omitempty"`
	Name            string              `json:"name" gorm:"not null"`
	Description     string              `json:"description"`
	ImageURL        string              `json:"imageUrl"`
	Price           decimal.Decimal     `json:"price" gorm:"not null"`
	IsVeg           bool                `json:"isVeg" gorm:"default:true"`
	IsAvailable     bool                `json:"isAvailable" gorm:"default:true"`
	Rating          decimal.Decimal     `json:"rating"`
	ReviewCount     int                 `json:"reviewCount" gorm:"default:0"`
	IsBestseller    bool                `json:"isBestseller" gorm:"default:false"`
	IsNew           bool                `json:"isNew" gorm:"default:false"`
	IsChefSpecial   bool                `json:"isChefSpecial" gorm:"default:false"`
	IsHealthy       bool                `json:"isHealthy" gorm:"default:false"`
	SpiceLevel      int                 `json:"spiceLevel" gorm:"default:1"` // 0-5
	PortionSize     string              `json:"portionSize"`
	PreparationTime int                 `json:"preparationTime" gorm:"default:15"` // minutes
	Customizations  []DishCustomization `json:"customizations,omitempty" gorm:"serializer:json"`
}

// DishCustomization is an option group a customer picks from, e.g. pizza size.
type DishCustomization struct {
	Name          string                `json:"name"`
	Required      bool                  `json:"required"`
	MaxSelections int                   `json:"maxSelections"`
	Options       []CustomizationOption `json:"options"`
}

type CustomizationOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// DishReview is append-only; ratings are on a 1-10 scale.
type DishReview struct {
	ID              string    `json:"id" gorm:"primaryKey;size:128"`
	DishID          string    `json:"dishId" gorm:"index;not null"`
	UserID          string    `json:"userId" gorm:"not null"`
	OrderID         *string   `json:"orderId,omitempty"`
	Rating          int       `json:"rating" gorm:"not null"`
	TasteRating     int       `json:"tasteRating"`
	PortionRating   int       `json:"portionRating"`
	PackagingRating int       `json:"packagingRating"`
	FreshnessRating int       `json:"freshnessRating"`
	Comment         string    `json:"comment"`
	PhotoURLs       []string  `json:"photoUrls,omitempty" gorm:"serializer:json"`
	CreatedAt       time.Time `json:"createdAt"`
}
