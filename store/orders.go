package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodie-api/apperrors"
	"foodie-api/models"
)

// ── Orders ──────────────────────────────────────────────────────────────────

func (s *Store) GetOrder(id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "order")
	}
	return &order, nil
}

func (s *Store) ListOrdersByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

func (s *Store) ListOrdersByRestaurant(restaurantID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

func (s *Store) ListOrdersByPartner(partnerUserID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("delivery_partner_id = ?", partnerUserID).
		Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

// ListAvailableForDelivery is the partner-facing job queue: ready orders
// with no partner assigned yet, oldest first.
func (s *Store) ListAvailableForDelivery() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("status = ? AND delivery_partner_id IS NULL", models.StatusReady).
		Order("created_at asc").Find(&orders).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

// CreateOrderInTx inserts the order inside the caller's transaction. The
// lifecycle manager owns the surrounding validation.
func (s *Store) CreateOrderInTx(tx *gorm.DB, order *models.Order) error {
	order.ID = uuid.NewString()
	order.CreatedAt = time.Now()
	return tx.Create(order).Error
}

// TransitionOrder persists a status change guarded on the expected current
// status, so a racing writer cannot interleave: either the full update
// applies or nothing does. RowsAffected 0 means the order moved under us.
func (s *Store) TransitionOrder(id string, from models.OrderStatus, updates map[string]any) (*models.Order, error) {
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return nil, apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetOrder(id); err != nil {
			return nil, err
		}
		return nil, apperrors.Conflict("order status changed concurrently, re-read and retry")
	}
	return s.GetOrder(id)
}

// AssignDeliveryPartner is the compare-and-set that resolves the partner
// assignment race: the order must still be ready and unassigned. Exactly one
// of any number of racing partners wins.
func (s *Store) AssignDeliveryPartner(orderID, partnerUserID string, pickedUpAt time.Time) (*models.Order, error) {
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ? AND delivery_partner_id IS NULL", orderID, models.StatusReady).
		Updates(map[string]any{
			"delivery_partner_id": partnerUserID,
			"status":              models.StatusPickedUp,
			"picked_up_at":        pickedUpAt,
		})
	if res.Error != nil {
		return nil, apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		order, err := s.GetOrder(orderID)
		if err != nil {
			return nil, err
		}
		if order.DeliveryPartnerID != nil {
			return nil, apperrors.Conflict("order has already been accepted by another partner")
		}
		return nil, apperrors.InvalidTransition("order is not ready for pickup (status " + string(order.Status) + ")")
	}
	return s.GetOrder(orderID)
}

// ── Delivery partners ───────────────────────────────────────────────────────

func (s *Store) GetDeliveryPartnerByUser(userID string) (*models.DeliveryPartner, error) {
	var partner models.DeliveryPartner
	if err := s.db.First(&partner, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, "delivery partner")
	}
	return &partner, nil
}

// CreateDeliveryPartner enforces one partner record per user.
func (s *Store) CreateDeliveryPartner(partner *models.DeliveryPartner) error {
	if _, err := s.GetUser(partner.UserID); err != nil {
		return err
	}
	var count int64
	s.db.Model(&models.DeliveryPartner{}).Where("user_id = ?", partner.UserID).Count(&count)
	if count > 0 {
		return apperrors.Validation("delivery partner profile already exists")
	}
	partner.ID = uuid.NewString()
	if err := s.db.Create(partner).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// UpdateDeliveryPartnerByUser merges status/location fields. Toggling
// availability does not touch orders already assigned to the partner.
func (s *Store) UpdateDeliveryPartnerByUser(userID string, updates map[string]any) (*models.DeliveryPartner, error) {
	partner, err := s.GetDeliveryPartnerByUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(partner).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.GetDeliveryPartnerByUser(userID)
}

// IncrementPartnerDeliveries bumps the completed-delivery counter.
func (s *Store) IncrementPartnerDeliveries(userID string) error {
	res := s.db.Model(&models.DeliveryPartner{}).
		Where("user_id = ?", userID).
		Update("total_deliveries", gorm.Expr("total_deliveries + 1"))
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	return nil
}
