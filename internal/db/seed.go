package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

// Seed inserts the registration policy row when none exists. Invite-only by
// default so a fresh install is closed until an operator opens it.
func Seed(ctx context.Context, database *gorm.DB) error {
	settings := models.Settings{ID: 1, AllowPublicSignups: false}
	return database.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&settings).Error
}
