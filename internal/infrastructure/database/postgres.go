package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/epalau/patrimonio/internal/infrastructure/database/models"
)

// NewPostgres opens the row store with a slow-query logger.
func NewPostgres(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	return db, err
}

// MigratePostgres applies migrations for all row models.
func MigratePostgres(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.FamilyMember{},
		&models.Building{},
		&models.Apartment{},
		&models.Flat{},
		&models.Land{},
		&models.Tenant{},
		&models.RentPayment{},
		&models.InsurancePolicy{},
		&models.Document{},
	)
}
