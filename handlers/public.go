package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"foodie-api/apperrors"
	"foodie-api/models"
	"foodie-api/statemachine"
)

// ListRestaurants returns the catalog with optional cuisine/search/veg/open
// filters (public)
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.store.ListRestaurants()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	cuisine := strings.ToLower(c.Query("cuisine"))
	search := strings.ToLower(c.Query("search"))
	vegOnly := c.Query("veg") == "true"
	openOnly := c.Query("open") == "true"

	filtered := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		if cuisine != "" && !hasCuisine(r.Cuisines, cuisine) {
			continue
		}
		if vegOnly && !r.IsVeg {
			continue
		}
		if openOnly && !r.IsOpen {
			continue
		}
		filtered = append(filtered, r)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(filtered), "restaurants": filtered})
}

func hasCuisine(cuisines []string, want string) bool {
	for _, cu := range cuisines {
		if strings.Contains(strings.ToLower(cu), want) {
			return true
		}
	}
	return false
}

// GetRestaurant returns a single restaurant with its categories and dishes
func (h *Handler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.store.GetRestaurant(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	categories, err := h.store.ListMenuCategories(restaurant.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	dishes, err := h.store.ListDishes(restaurant.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant,
		"categories": categories,
		"dishes":     dishes,
	})
}

// ListMenuCategories returns a restaurant's categories in display order
func (h *Handler) ListMenuCategories(c *gin.Context) {
	if _, err := h.store.GetRestaurant(c.Param("id")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	categories, err := h.store.ListMenuCategories(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListDishes returns a restaurant's menu with optional category/veg filters
func (h *Handler) ListDishes(c *gin.Context) {
	if _, err := h.store.GetRestaurant(c.Param("id")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	dishes, err := h.store.ListDishes(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	categoryID := c.Query("category")
	vegOnly := c.Query("veg") == "true"
	filtered := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		if categoryID != "" && (d.CategoryID == nil || *d.CategoryID != categoryID) {
			continue
		}
		if vegOnly && !d.IsVeg {
			continue
		}
		filtered = append(filtered, d)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(filtered), "dishes": filtered})
}

// GetDish returns one dish with its reviews
func (h *Handler) GetDish(c *gin.Context) {
	dish, err := h.store.GetDish(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	reviews, err := h.store.ListDishReviews(dish.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dish": dish, "reviews": reviews})
}

// ListDishReviews returns reviews for a dish, newest first
func (h *Handler) ListDishReviews(c *gin.Context) {
	reviews, err := h.store.ListDishReviews(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// GetStateMachineInfo returns the full state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Order lifecycle state machine",
	})
}
