package models

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer        UserRole = "customer"
	RoleRestaurant      UserRole = "restaurant"
	RoleDeliveryPartner UserRole = "delivery_partner"
)

type User struct {
	ID           string   `json:"id" gorm:"primaryKey;size:128"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null"`
	Name         string   `json:"name" gorm:"not null"`
	Phone        string   `json:"phone"`
	Role         UserRole `json:"role" gorm:"not null;default:'customer'"`
	AvatarURL    string   `json:"avatarUrl"`
	FirebaseUID  *string  `json:"firebaseUid,omitempty" gorm:"uniqueIndex"`
	PasswordHash string   `json:"-"`
}

// Address belongs to a user; at most one address per user carries the
// default flag (enforced by the store, not the schema).
type Address struct {
	ID          string   `json:"id" gorm:"primaryKey;size:128"`
	UserID      string   `json:"userId" gorm:"index;not null"`
	Label       string   `json:"label" gorm:"not null"`
	FullAddress string   `json:"fullAddress" gorm:"not null"`
	Landmark    string   `json:"landmark"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	IsDefault   bool     `json:"isDefault" gorm:"default:false"`
}
