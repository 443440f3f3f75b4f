// Package orders is the order lifecycle manager: it creates priced, frozen
// order snapshots and advances them through the status state machine. All
// operations either fully succeed or leave the order untouched.
package orders

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodie-api/apperrors"
	"foodie-api/coupon"
	"foodie-api/models"
	"foodie-api/pricing"
	"foodie-api/statemachine"
	"foodie-api/store"
)

type Manager struct {
	store *store.Store
	log   *zap.Logger
}

func NewManager(s *store.Store, log *zap.Logger) *Manager {
	return &Manager{store: s, log: log}
}

// ItemInput is one client-submitted cart line. UnitPrice and TotalPrice are
// the client's preview numbers; the server recomputes both from the catalog
// and rejects the order on any mismatch.
type ItemInput struct {
	DishID              string                         `json:"dishId" binding:"required"`
	Quantity            int                            `json:"quantity" binding:"required,min=1"`
	Customizations      []models.SelectedCustomization `json:"customizations"`
	SpecialInstructions string                         `json:"specialInstructions"`
	UnitPrice           decimal.Decimal                `json:"unitPrice"`
	TotalPrice          decimal.Decimal                `json:"totalPrice"`
}

type CreateOrderInput struct {
	UserID              string               `json:"userId" binding:"required"`
	RestaurantID        string               `json:"restaurantId" binding:"required"`
	AddressID           string               `json:"addressId" binding:"required"`
	DeliveryAddress     string               `json:"deliveryAddress"`
	Items               []ItemInput          `json:"items" binding:"required,min=1,dive"`
	PaymentMethod       models.PaymentMethod `json:"paymentMethod" binding:"required,oneof=upi card wallet cod"`
	CouponCode          string               `json:"couponCode"`
	SpecialInstructions string               `json:"specialInstructions"`
}

// timestampColumn maps a status to the bookkeeping column stamped on entry.
var timestampColumn = map[models.OrderStatus]string{
	models.StatusAccepted:  "accepted_at",
	models.StatusPreparing: "preparing_at",
	models.StatusReady:     "ready_at",
	models.StatusPickedUp:  "picked_up_at",
	models.StatusDelivered: "delivered_at",
}

// Create validates every referenced entity, reprices the submitted items
// server-side, re-validates the coupon, and persists a pending order with a
// frozen item/total snapshot. The coupon's usedCount is incremented exactly
// once, in the same transaction as the order insert.
func (m *Manager) Create(in CreateOrderInput) (*models.Order, error) {
	if _, err := m.store.GetUser(in.UserID); err != nil {
		return nil, err
	}
	restaurant, err := m.store.GetRestaurant(in.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsOpen {
		return nil, apperrors.Validation("restaurant is currently closed")
	}
	address, err := m.store.GetAddress(in.AddressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != in.UserID {
		return nil, apperrors.Validation("address does not belong to this user")
	}
	deliveryAddress := in.DeliveryAddress
	if deliveryAddress == "" {
		deliveryAddress = address.FullAddress
	}

	items, err := m.buildSnapshot(in)
	if err != nil {
		return nil, err
	}

	var appliedCoupon *models.Coupon
	if in.CouponCode != "" {
		appliedCoupon, err = m.store.GetCouponByCode(in.CouponCode)
		if err != nil {
			return nil, err
		}
		if err := coupon.Validate(appliedCoupon, pricing.Subtotal(items), in.RestaurantID, time.Now()); err != nil {
			return nil, couponError(err)
		}
	}

	quote := pricing.Price(items, appliedCoupon)

	order := &models.Order{
		UserID:                in.UserID,
		RestaurantID:          in.RestaurantID,
		AddressID:             &in.AddressID,
		DeliveryAddress:       deliveryAddress,
		Status:                models.StatusPending,
		Items:                 items,
		Subtotal:              quote.Subtotal,
		DeliveryFee:           quote.DeliveryFee,
		Taxes:                 quote.Taxes,
		Discount:              quote.Discount,
		Total:                 quote.Total,
		CouponCode:            couponCode(appliedCoupon),
		PaymentMethod:         in.PaymentMethod,
		PaymentStatus:         "pending",
		SpecialInstructions:   in.SpecialInstructions,
		EstimatedDeliveryTime: restaurant.DeliveryTime,
	}

	err = m.store.DB().Transaction(func(tx *gorm.DB) error {
		if err := m.store.CreateOrderInTx(tx, order); err != nil {
			return err
		}
		if appliedCoupon != nil {
			return m.store.RedeemCouponInTx(tx, appliedCoupon.ID)
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Internal(err)
	}

	m.log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("restaurant_id", order.RestaurantID),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

// buildSnapshot reprices each submitted line from the live catalog and
// verifies the client's numbers before freezing them into the order.
func (m *Manager) buildSnapshot(in CreateOrderInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity < 1 {
			return nil, apperrors.Validation("item quantity must be at least 1")
		}
		dish, err := m.store.GetDish(line.DishID)
		if err != nil {
			return nil, err
		}
		if dish.RestaurantID != in.RestaurantID {
			return nil, apperrors.Validation("dish '" + dish.Name + "' does not belong to this restaurant")
		}
		if !dish.IsAvailable {
			return nil, apperrors.Validation("dish '" + dish.Name + "' is not available")
		}

		unit := pricing.UnitPrice(dish, line.Customizations)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		if !line.UnitPrice.IsZero() && !unit.Equal(line.UnitPrice) {
			return nil, apperrors.Validation(
				"price mismatch for '" + dish.Name + "': submitted " + line.UnitPrice.StringFixed(2) +
					", expected " + unit.StringFixed(2))
		}
		if !line.TotalPrice.IsZero() && !lineTotal.Equal(line.TotalPrice) {
			return nil, apperrors.Validation(
				"line total mismatch for '" + dish.Name + "': submitted " + line.TotalPrice.StringFixed(2) +
					", expected " + lineTotal.StringFixed(2))
		}

		items = append(items, models.OrderItem{
			DishID:              dish.ID,
			DishName:            dish.Name,
			Quantity:            line.Quantity,
			UnitPrice:           unit,
			TotalPrice:          lineTotal,
			Customizations:      line.Customizations,
			SpecialInstructions: line.SpecialInstructions,
			ImageURL:            dish.ImageURL,
		})
	}
	return items, nil
}

// Transition advances an order to the requested status. The target must be
// the immediate successor or cancelled-while-non-terminal; anything else is
// rejected and the order is left unchanged. An actor of "" skips the role
// check (trusted internal callers and tests). Timestamps are stamped only
// when unset, so a replayed transition never rewrites history.
func (m *Manager) Transition(orderID string, next models.OrderStatus, actor string) (*models.Order, error) {
	order, err := m.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if actor != "" {
		if err := statemachine.CanActorTransition(order.Status, next, actor); err != nil {
			return nil, apperrors.InvalidTransition(err.Error())
		}
	} else if err := statemachine.CanTransition(order.Status, next); err != nil {
		return nil, apperrors.InvalidTransition(err.Error())
	}

	updates := map[string]any{"status": next}
	if col, ok := timestampColumn[next]; ok {
		if ts := order.TimestampFor(next); ts != nil && *ts == nil {
			updates[col] = time.Now()
		}
	}

	updated, err := m.store.TransitionOrder(orderID, order.Status, updates)
	if err != nil {
		return nil, err
	}

	if next == models.StatusDelivered && updated.DeliveryPartnerID != nil {
		if err := m.store.IncrementPartnerDeliveries(*updated.DeliveryPartnerID); err != nil {
			m.log.Warn("failed to bump partner delivery count",
				zap.String("order_id", orderID), zap.Error(err))
		}
	}

	m.log.Info("order transitioned",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)),
	)
	return updated, nil
}

// AcceptForDelivery atomically claims a ready, unassigned order for a
// delivery partner and advances it to picked_up. Racing partners lose with
// a conflict and must re-poll the available list.
func (m *Manager) AcceptForDelivery(orderID, partnerUserID string) (*models.Order, error) {
	partner, err := m.store.GetDeliveryPartnerByUser(partnerUserID)
	if err != nil {
		return nil, err
	}
	if !partner.IsOnline || !partner.IsAvailable {
		return nil, apperrors.Validation("partner must be online and available to accept orders")
	}

	order, err := m.store.AssignDeliveryPartner(orderID, partnerUserID, time.Now())
	if err != nil {
		return nil, err
	}
	m.log.Info("order assigned",
		zap.String("order_id", orderID),
		zap.String("partner_user_id", partnerUserID),
	)
	return order, nil
}

// ListAvailableForDelivery is the partner job queue: ready and unassigned.
func (m *Manager) ListAvailableForDelivery() ([]models.Order, error) {
	return m.store.ListAvailableForDelivery()
}

// ValidateCoupon runs the validator against a proposed amount without
// redeeming anything.
func (m *Manager) ValidateCoupon(code string, orderAmount decimal.Decimal, restaurantID string) (*models.Coupon, error) {
	c, err := m.store.GetCouponByCode(code)
	if err != nil {
		return nil, err
	}
	if err := coupon.Validate(c, orderAmount, restaurantID, time.Now()); err != nil {
		return nil, couponError(err)
	}
	return c, nil
}

func couponError(err error) error {
	var rej *coupon.RejectionError
	if errors.As(err, &rej) {
		return apperrors.CouponRejected(string(rej.Reason), rej.Message)
	}
	return apperrors.Internal(err)
}

func couponCode(c *models.Coupon) string {
	if c == nil {
		return ""
	}
	return c.Code
}
