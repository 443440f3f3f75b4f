package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"foodie-api/apperrors"
	"foodie-api/middleware"
	"foodie-api/models"
	"foodie-api/orders"
)

// ── Addresses ───────────────────────────────────────────────────────────────

type CreateAddressRequest struct {
	Label       string   `json:"label" binding:"required"`
	FullAddress string   `json:"fullAddress" binding:"required"`
	Landmark    string   `json:"landmark"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	IsDefault   bool     `json:"isDefault"`
}

// ListAddresses returns the caller's saved addresses
func (h *Handler) ListAddresses(c *gin.Context) {
	addresses, err := h.store.ListAddresses(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// CreateAddress saves a new delivery address for the caller
func (h *Handler) CreateAddress(c *gin.Context) {
	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address := models.Address{
		UserID:      middleware.GetUserID(c),
		Label:       req.Label,
		FullAddress: req.FullAddress,
		Landmark:    req.Landmark,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsDefault:   req.IsDefault,
	}
	if err := h.store.CreateAddress(&address); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// DeleteAddress removes one of the caller's addresses
func (h *Handler) DeleteAddress(c *gin.Context) {
	address, err := h.store.GetAddress(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if address.UserID != middleware.GetUserID(c) {
		apperrors.Respond(c, apperrors.Forbidden("this address does not belong to you"))
		return
	}
	if err := h.store.DeleteAddress(address.ID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

// ── Coupons ─────────────────────────────────────────────────────────────────

type ValidateCouponRequest struct {
	Code         string          `json:"code" binding:"required"`
	OrderAmount  decimal.Decimal `json:"orderAmount" binding:"required"`
	RestaurantID string          `json:"restaurantId"`
}

// ValidateCoupon runs a validation-only check; usedCount is untouched
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	coupon, err := h.orders.ValidateCoupon(req.Code, req.OrderAmount, req.RestaurantID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupon": coupon})
}

// ── Orders ──────────────────────────────────────────────────────────────────

// PlaceOrder creates a new order from the caller's cart
func (h *Handler) PlaceOrder(c *gin.Context) {
	var in orders.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in.UserID = middleware.GetUserID(c)

	order, err := h.orders.Create(in)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetMyOrders returns all orders for the logged-in customer, newest first
func (h *Handler) GetMyOrders(c *gin.Context) {
	list, err := h.store.ListOrdersByUser(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
}

// GetOrderDetail returns one order with the assigned partner's live
// location joined in for the tracking view (pull model, no push channel)
func (h *Handler) GetOrderDetail(c *gin.Context) {
	order, err := h.store.GetOrder(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if order.UserID != middleware.GetUserID(c) {
		apperrors.Respond(c, apperrors.Forbidden("this order does not belong to you"))
		return
	}

	if order.DeliveryPartnerID != nil {
		if partner, err := h.store.GetDeliveryPartnerByUser(*order.DeliveryPartnerID); err == nil {
			if partner.CurrentLatitude != nil && partner.CurrentLongitude != nil {
				order.DeliveryPartnerLocation = &models.LatLng{
					Lat: *partner.CurrentLatitude,
					Lng: *partner.CurrentLongitude,
				}
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels one of the caller's orders while still cancellable
func (h *Handler) CancelOrder(c *gin.Context) {
	order, err := h.store.GetOrder(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if order.UserID != middleware.GetUserID(c) {
		apperrors.Respond(c, apperrors.Forbidden("this order does not belong to you"))
		return
	}
	updated, err := h.orders.Transition(order.ID, models.StatusCancelled, "customer")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": updated})
}

// ── Reviews ─────────────────────────────────────────────────────────────────

type CreateReviewRequest struct {
	OrderID         string   `json:"orderId"`
	Rating          int      `json:"rating" binding:"required,min=1,max=10"`
	TasteRating     int      `json:"tasteRating" binding:"omitempty,min=1,max=10"`
	PortionRating   int      `json:"portionRating" binding:"omitempty,min=1,max=10"`
	PackagingRating int      `json:"packagingRating" binding:"omitempty,min=1,max=10"`
	FreshnessRating int      `json:"freshnessRating" binding:"omitempty,min=1,max=10"`
	Comment         string   `json:"comment"`
	PhotoURLs       []string `json:"photoUrls"`
}

// CreateDishReview appends a review for a dish
func (h *Handler) CreateDishReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review := models.DishReview{
		DishID:          c.Param("id"),
		UserID:          middleware.GetUserID(c),
		Rating:          req.Rating,
		TasteRating:     req.TasteRating,
		PortionRating:   req.PortionRating,
		PackagingRating: req.PackagingRating,
		FreshnessRating: req.FreshnessRating,
		Comment:         req.Comment,
		PhotoURLs:       req.PhotoURLs,
	}
	if req.OrderID != "" {
		review.OrderID = &req.OrderID
	}
	if err := h.store.CreateDishReview(&review); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}
