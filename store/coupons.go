package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodie-api/apperrors"
	"foodie-api/models"
)

// GetCouponByCode resolves a code case-insensitively. Codes are stored
// uppercased, so lookup is a single indexed equality.
func (s *Store) GetCouponByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := s.db.First(&coupon, "code = ?", strings.ToUpper(code)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &coupon, nil
}

func (s *Store) CreateCoupon(coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(coupon.Code)
	var count int64
	s.db.Model(&models.Coupon{}).Where("code = ?", coupon.Code).Count(&count)
	if count > 0 {
		return apperrors.Validation("coupon code already exists")
	}
	coupon.ID = uuid.NewString()
	if err := s.db.Create(coupon).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// RedeemCouponInTx increments usedCount by exactly one inside the caller's
// transaction, guarded against overshooting the usage limit.
func (s *Store) RedeemCouponInTx(tx *gorm.DB, couponID string) error {
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", couponID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.CouponRejected("usage_exhausted", "coupon usage limit reached")
	}
	return nil
}
