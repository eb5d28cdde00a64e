package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

// Migrate performs schema migrations for the persistent models.
func Migrate(ctx context.Context, database *gorm.DB) error {
	return database.WithContext(ctx).AutoMigrate(
		&models.Profile{},
		&models.Session{},
		&models.EmailToken{},
		&models.Invitation{},
		&models.Event{},
		&models.Settings{},
	)
}
