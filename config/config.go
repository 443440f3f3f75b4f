package config

import (
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"foodie-api/models"
)

// DefaultDSN keeps the whole store memory-resident: the database lives only
// as long as the process and resets on restart.
const DefaultDSN = "file:foodie?mode=memory&cache=shared"

// JWTSecret used to sign tokens — populated by Init
var JWTSecret []byte

// Init loads .env (if present) and derives process configuration.
func Init() {
	_ = godotenv.Load()
	JWTSecret = []byte(getEnv("JWT_SECRET", "foodie_super_secret_2024"))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Port returns the HTTP listen port.
func Port() string {
	return getEnv("PORT", "8080")
}

// LogEnv selects the zap config profile.
func LogEnv() string {
	return getEnv("LOG_ENV", "development")
}

// Open connects to the database and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Restaurant{},
		&models.MenuCategory{},
		&models.Dish{},
		&models.DishReview{},
		&models.Order{},
		&models.Coupon{},
		&models.DeliveryPartner{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
