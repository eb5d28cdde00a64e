package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

// GormSettingsRepository is the PostgreSQL implementation of SettingsRepository.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository returns a settings repository over the given handle.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No policy row behaves as invite-only, same as the seed default.
		return &models.Settings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
