// Package store is the entity store: identity-keyed collections with
// lookup, filter and sort helpers. It is the sole owner of ID generation
// and carries no business rules beyond referential filtering and the
// uniqueness/default-flag invariants documented on each method.
//
// A Store is constructed once at process start and passed by reference to
// every component that needs it; there is no package-level instance.
package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodie-api/apperrors"
	"foodie-api/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for transaction-scoped work.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(what)
	}
	return apperrors.Internal(err)
}

// ── Users ───────────────────────────────────────────────────────────────────

func (s *Store) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

func (s *Store) GetUserByFirebaseUID(uid string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "firebase_uid = ?", uid).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// CreateUser mints an id and enforces email/firebaseUid uniqueness.
func (s *Store) CreateUser(user *models.User) error {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count)
	if count > 0 {
		return apperrors.Validation("email already registered")
	}
	if user.FirebaseUID != nil {
		s.db.Model(&models.User{}).Where("firebase_uid = ?", *user.FirebaseUID).Count(&count)
		if count > 0 {
			return apperrors.Validation("account already linked to this sign-in")
		}
	}
	user.ID = uuid.NewString()
	if err := s.db.Create(user).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Store) UpdateUser(id string, updates map[string]any) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.GetUser(id)
}

// ── Addresses ───────────────────────────────────────────────────────────────

func (s *Store) ListAddresses(userID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&addresses).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return addresses, nil
}

func (s *Store) GetAddress(id string) (*models.Address, error) {
	var address models.Address
	if err := s.db.First(&address, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "address")
	}
	return &address, nil
}

// CreateAddress stores a new address. Setting isDefault clears the flag on
// the user's other addresses in the same transaction, so at most one
// default exists per user.
func (s *Store) CreateAddress(address *models.Address) error {
	if _, err := s.GetUser(address.UserID); err != nil {
		return err
	}
	address.ID = uuid.NewString()
	return s.transact(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", address.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

// UpdateAddress merges fields, keeping the single-default invariant.
func (s *Store) UpdateAddress(id string, updates map[string]any) (*models.Address, error) {
	address, err := s.GetAddress(id)
	if err != nil {
		return nil, err
	}
	err = s.transact(func(tx *gorm.DB) error {
		if isDefault, ok := updates["is_default"].(bool); ok && isDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND id <> ?", address.UserID, id).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(address).Updates(updates).Error
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.GetAddress(id)
}

func (s *Store) DeleteAddress(id string) error {
	res := s.db.Delete(&models.Address{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("address")
	}
	return nil
}

func (s *Store) transact(fn func(tx *gorm.DB) error) error {
	if err := s.db.Transaction(fn); err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Internal(err)
	}
	return nil
}
