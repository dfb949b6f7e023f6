package storage

import (
	"fmt"

	"github.com/vijaypatidar123/Dream-Nest/config"
	"github.com/vijaypatidar123/Dream-Nest/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and runs migrations. The returned handle is
// passed down to the route handlers; nothing in this package holds it.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %w", err)
	}

	if err := performMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func performMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Booking{},
	)
}
