package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

// GormEventRepository is the PostgreSQL implementation of EventRepository.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository returns an event repository over the given handle.
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Upcoming(ctx context.Context, now time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("date >= ?", now).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
