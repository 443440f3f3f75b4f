package store

import (
	"time"

	"github.com/shopspring/decimal"

	"foodie-api/models"
)

func ptr[T any](v T) *T { return &v }

// Seed loads the demo catalog and coupons so the store is browsable on a
// fresh start. A no-op when restaurants already exist.
func (s *Store) Seed() error {
	var count int64
	if err := s.db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	restaurants := []models.Restaurant{
		{
			ID:             "rest-1",
			Name:           "Tandoori Nights",
			Description:    "Authentic North Indian cuisine with signature tandoor dishes",
			Cuisines:       []string{"North Indian", "Mughlai", "Tandoor"},
			Address:        "123 Food Street, Koramangala, Bangalore",
			Latitude:       ptr(12.9352),
			Longitude:      ptr(77.6245),
			Phone:          "+91 9876543210",
			Email:          "tandoori@foodie.com",
			Rating:         decimal.RequireFromString("4.5"),
			ReviewCount:    324,
			PriceRange:     2,
			DeliveryTime:   35,
			DeliveryFee:    decimal.Zero,
			MinOrderAmount: decimal.NewFromInt(150),
			IsOpen:         true,
			OpeningTime:    "11:00",
			ClosingTime:    "23:00",
			HasOffers:      true,
			OfferText:      "50% OFF up to 100",
		},
		{
			ID:             "rest-2",
			Name:           "Pizza Paradise",
			Description:    "Hand-tossed pizzas with fresh ingredients",
			Cuisines:       []string{"Italian", "Pizza", "Pasta"},
			Address:        "45 Gourmet Lane, Indiranagar, Bangalore",
			Latitude:       ptr(12.9716),
			Longitude:      ptr(77.6412),
			Phone:          "+91 9876543211",
			Email:          "pizza@foodie.com",
			Rating:         decimal.RequireFromString("4.3"),
			ReviewCount:    512,
			PriceRange:     3,
			DeliveryTime:   30,
			DeliveryFee:    decimal.NewFromInt(30),
			MinOrderAmount: decimal.NewFromInt(200),
			IsOpen:         true,
			OpeningTime:    "10:00",
			ClosingTime:    "24:00",
			HasOffers:      true,
			OfferText:      "Free delivery on orders above 500",
		},
	}

	categories := []models.MenuCategory{
		{ID: "cat-1", RestaurantID: "rest-1", Name: "Starters", SortOrder: 1},
		{ID: "cat-2", RestaurantID: "rest-1", Name: "Tandoor Mains", SortOrder: 2},
		{ID: "cat-5", RestaurantID: "rest-2", Name: "Pizzas", SortOrder: 1},
	}

	dishes := []models.Dish{
		{
			ID:           "dish-1",
			RestaurantID: "rest-1",
			CategoryID:   ptr("cat-1"),
			Name:         "Paneer Tikka",
			Description:  "Char-grilled cottage cheese with mint chutney",
			Price:        decimal.NewFromInt(249),
			IsVeg:        true,
			IsAvailable:  true,
			Rating:       decimal.RequireFromString("4.4"),
			ReviewCount:  112,
			IsBestseller: true,
			SpiceLevel:   2,
			PortionSize:  "8 pieces",
		},
		{
			ID:            "dish-2",
			RestaurantID:  "rest-1",
			CategoryID:    ptr("cat-2"),
			Name:          "Butter Chicken",
			Description:   "Tandoori chicken simmered in tomato butter gravy",
			Price:         decimal.NewFromInt(349),
			IsAvailable:   true,
			Rating:        decimal.RequireFromString("4.6"),
			ReviewCount:   287,
			IsChefSpecial: true,
			SpiceLevel:    2,
			PortionSize:   "Full",
		},
		{
			ID:           "dish-6",
			RestaurantID: "rest-2",
			CategoryID:   ptr("cat-5"),
			Name:         "Margherita Pizza",
			Description:  "Classic pizza with fresh mozzarella and basil",
			Price:        decimal.NewFromInt(299),
			IsVeg:        true,
			IsAvailable:  true,
			Rating:       decimal.RequireFromString("4.3"),
			ReviewCount:  198,
			IsBestseller: true,
			PortionSize:  "Medium (8 inch)",
			Customizations: []models.DishCustomization{
				{
					Name:          "Size",
					Required:      true,
					MaxSelections: 1,
					Options: []models.CustomizationOption{
						{Name: "Medium", Price: decimal.Zero},
						{Name: "Large", Price: decimal.NewFromInt(100)},
					},
				},
				{
					Name:          "Extra Toppings",
					MaxSelections: 5,
					Options: []models.CustomizationOption{
						{Name: "Extra Cheese", Price: decimal.NewFromInt(50)},
						{Name: "Olives", Price: decimal.NewFromInt(30)},
						{Name: "Jalapenos", Price: decimal.NewFromInt(30)},
					},
				},
			},
		},
	}

	coupons := []models.Coupon{
		{
			ID:             "coupon-1",
			Code:           "FIRST50",
			Description:    "50% off on first order",
			DiscountType:   models.DiscountPercentage,
			DiscountValue:  decimal.NewFromInt(50),
			MinOrderAmount: decimal.NewFromInt(100),
			MaxDiscount:    ptr(decimal.NewFromInt(100)),
			UsageLimit:     ptr(1000),
			UsedCount:      456,
			ValidFrom:      ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			ValidUntil:     ptr(time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)),
			IsActive:       true,
		},
		{
			ID:             "coupon-2",
			Code:           "FLAT100",
			Description:    "Flat 100 off",
			DiscountType:   models.DiscountFlat,
			DiscountValue:  decimal.NewFromInt(100),
			MinOrderAmount: decimal.NewFromInt(300),
			UsageLimit:     ptr(500),
			UsedCount:      123,
			ValidFrom:      ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			ValidUntil:     ptr(time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)),
			IsActive:       true,
		},
	}

	if err := s.db.Create(&restaurants).Error; err != nil {
		return err
	}
	if err := s.db.Create(&categories).Error; err != nil {
		return err
	}
	if err := s.db.Create(&dishes).Error; err != nil {
		return err
	}
	return s.db.Create(&coupons).Error
}
