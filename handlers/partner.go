package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodie-api/apperrors"
	"foodie-api/middleware"
	"foodie-api/models"
)

type RegisterPartnerRequest struct {
	VehicleType   string `json:"vehicleType" binding:"required,oneof=bike scooter bicycle"`
	VehicleNumber string `json:"vehicleNumber"`
}

// RegisterPartner creates the rider profile for a delivery_partner user
func (h *Handler) RegisterPartner(c *gin.Context) {
	var req RegisterPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	partner := models.DeliveryPartner{
		UserID:        middleware.GetUserID(c),
		VehicleType:   req.VehicleType,
		VehicleNumber: req.VehicleNumber,
		IsAvailable:   true,
	}
	if err := h.store.CreateDeliveryPartner(&partner); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"partner": partner})
}

// GetMyPartnerProfile returns the caller's rider profile
func (h *Handler) GetMyPartnerProfile(c *gin.Context) {
	partner, err := h.store.GetDeliveryPartnerByUser(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partner": partner})
}

type PartnerStatusRequest struct {
	IsOnline    *bool    `json:"isOnline"`
	IsAvailable *bool    `json:"isAvailable"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// UpdatePartnerStatus toggles online/available flags and overwrites the live
// coordinates. In-flight orders already assigned to the partner are not
// affected.
func (h *Handler) UpdatePartnerStatus(c *gin.Context) {
	var req PartnerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]any{}
	setIf(updates, "is_online", req.IsOnline)
	setIf(updates, "is_available", req.IsAvailable)
	setIf(updates, "current_latitude", req.Lat)
	setIf(updates, "current_longitude", req.Lng)

	partner, err := h.store.UpdateDeliveryPartnerByUser(middleware.GetUserID(c), updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partner": partner})
}

// GetAvailableOrders shows ready orders that have no partner assigned
func (h *Handler) GetAvailableOrders(c *gin.Context) {
	list, err := h.orders.ListAvailableForDelivery()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
}

// AcceptOrder claims a ready order for the caller; losers of the race get a
// conflict and should re-poll
func (h *Handler) AcceptOrder(c *gin.Context) {
	order, err := h.orders.AcceptForDelivery(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// DeliverOrder completes a delivery assigned to the caller
func (h *Handler) DeliverOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	order, err := h.store.GetOrder(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if order.DeliveryPartnerID == nil || *order.DeliveryPartnerID != userID {
		apperrors.Respond(c, apperrors.Forbidden("you are not the assigned partner for this order"))
		return
	}
	updated, err := h.orders.Transition(order.ID, models.StatusDelivered, "partner")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": updated})
}

// GetMyDeliveries returns all orders assigned to the logged-in partner
func (h *Handler) GetMyDeliveries(c *gin.Context) {
	list, err := h.store.ListOrdersByPartner(middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
}
