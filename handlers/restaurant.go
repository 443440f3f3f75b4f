package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"foodie-api/apperrors"
	"foodie-api/middleware"
	"foodie-api/models"
	"foodie-api/statemachine"
)

// ── Restaurant management ───────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Cuisines    []string `json:"cuisines"`
	Address     string   `json:"address" binding:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Phone       string   `json:"phone"`
	OpeningTime string   `json:"openingTime"`
	ClosingTime string   `json:"closingTime"`
}

// CreateRestaurant lets a restaurant-role user create their restaurant
func (h *Handler) CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	if _, err := h.store.GetRestaurantByOwner(ownerID); err == nil {
		apperrors.Respond(c, apperrors.Validation("you already own a restaurant"))
		return
	}

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     &ownerID,
		Name:        req.Name,
		Description: req.Description,
		Cuisines:    req.Cuisines,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		IsOpen:      true,
	}
	if req.OpeningTime != "" {
		restaurant.OpeningTime = req.OpeningTime
	}
	if req.ClosingTime != "" {
		restaurant.ClosingTime = req.ClosingTime
	}
	if err := h.store.CreateRestaurant(&restaurant); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
}

// GetMyRestaurant fetches the restaurant owned by the logged-in user
func (h *Handler) GetMyRestaurant(c *gin.Context) {
	restaurant, err := h.store.GetRestaurantByOwner(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	IsOpen      *bool   `json:"isOpen"`
	OpeningTime *string `json:"openingTime"`
	ClosingTime *string `json:"closingTime"`
	HasOffers   *bool   `json:"hasOffers"`
	OfferText   *string `json:"offerText"`
}

// UpdateRestaurant updates restaurant details
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	restaurant, err := h.store.GetRestaurantByOwner(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]any{}
	setIf(updates, "name", req.Name)
	setIf(updates, "description", req.Description)
	setIf(updates, "address", req.Address)
	setIf(updates, "is_open", req.IsOpen)
	setIf(updates, "opening_time", req.OpeningTime)
	setIf(updates, "closing_time", req.ClosingTime)
	setIf(updates, "has_offers", req.HasOffers)
	setIf(updates, "offer_text", req.OfferText)

	updated, err := h.store.UpdateRestaurant(restaurant.ID, updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": updated})
}

func setIf[T any](updates map[string]any, key string, v *T) {
	if v != nil {
		updates[key] = *v
	}
}

// ── Menu management ─────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

// CreateMenuCategory adds a category to the owner's menu
func (h *Handler) CreateMenuCategory(c *gin.Context) {
	restaurant, err := h.store.GetRestaurantByOwner(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := models.MenuCategory{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
	}
	if err := h.store.CreateMenuCategory(&category); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

type CreateDishRequest struct {
	CategoryID     string                     `json:"categoryId"`
	Name           string                     `json:"name" binding:"required"`
	Description    string                     `json:"description"`
	Price          decimal.Decimal            `json:"price" binding:"required"`
	IsVeg          bool                       `json:"isVeg"`
	SpiceLevel     int                        `json:"spiceLevel" binding:"min=0,max=5"`
	PortionSize    string                     `json:"portionSize"`
	Customizations []models.DishCustomization `json:"customizations"`
}

// CreateDish adds a new dish to the owner's menu
func (h *Handler) CreateDish(c *gin.Context) {
	restaurant, err := h.store.GetRestaurantByOwner(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price.IsNegative() {
		apperrors.Respond(c, apperrors.Validation("price must not be negative"))
		return
	}
	dish := models.Dish{
		RestaurantID:   restaurant.ID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		IsVeg:          req.IsVeg,
		IsAvailable:    true,
		SpiceLevel:     req.SpiceLevel,
		PortionSize:    req.PortionSize,
		Customizations: req.Customizations,
	}
	if req.CategoryID != "" {
		dish.CategoryID = &req.CategoryID
	}
	if err := h.store.CreateDish(&dish); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dish": dish})
}

type UpdateDishRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"isAvailable"`
	IsVeg       *bool            `json:"isVeg"`
}

// UpdateDish updates a dish (only by the owner)
func (h *Handler) UpdateDish(c *gin.Context) {
	dish, err := h.store.GetDish(c.Param("dishId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	restaurant, err := h.store.GetRestaurantByOwner(middleware.GetUserID(c))
	if err != nil || restaurant.ID != dish.RestaurantID {
		apperrors.Respond(c, apperrors.Forbidden("you don't own this dish"))
		return
	}

	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		apperrors.Respond(c, apperrors.Validation("price must not be negative"))
		return
	}
	updates := map[string]any{}
	setIf(updates, "name", req.Name)
	setIf(updates, "description", req.Description)
	setIf(updates, "price", req.Price)
	setIf(updates, "is_available", req.IsAvailable)
	setIf(updates, "is_veg", req.IsVeg)

	updated, err := h.store.UpdateDish(dish.ID, updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dish": updated})
}

// ── Order management ────────────────────────────────────────────────────────

// GetRestaurantOrders returns the owner's incoming orders with a status summary
func (h *Handler) GetRestaurantOrders(c *gin.Context) {
	restaurant, err := h.store.GetRestaurantByOwner(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	list, err := h.store.ListOrdersByRestaurant(restaurant.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := list[:0]
		for _, o := range list {
			if string(o.Status) == status {
				filtered = append(filtered, o)
			}
		}
		list = filtered
	}

	summary := map[string]int{}
	for _, o := range list {
		summary[string(o.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"count":         len(list),
		"orders":        list,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus handles the restaurant's state transitions
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	restaurant, err := h.store.GetRestaurantByOwner(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	order, err := h.store.GetOrder(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if order.RestaurantID != restaurant.ID {
		apperrors.Respond(c, apperrors.Forbidden("this order does not belong to your restaurant"))
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.orders.Transition(order.ID, req.Status, "restaurant")
	if err != nil {
		c.Header("X-Valid-Next-States", joinStatuses(statemachine.ValidTransitionsFrom(order.Status)))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": updated})
}

func joinStatuses(statuses []models.OrderStatus) string {
	s := ""
	for i, st := range statuses {
		if i > 0 {
			s += ","
		}
		s += string(st)
	}
	return s
}
