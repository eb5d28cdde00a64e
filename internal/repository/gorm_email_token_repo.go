package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

// GormEmailTokenRepository is the PostgreSQL implementation of EmailTokenRepository.
type GormEmailTokenRepository struct {
	db *gorm.DB
}

// NewGormEmailTokenRepository returns an email token repository over the given handle.
func NewGormEmailTokenRepository(db *gorm.DB) *GormEmailTokenRepository {
	return &GormEmailTokenRepository{db: db}
}

func (r *GormEmailTokenRepository) Create(ctx context.Context, token *models.EmailToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *GormEmailTokenRepository) Consume(ctx context.Context, token string, now time.Time) (*models.EmailToken, error) {
	// Conditional UPDATE so a token can only ever be consumed once, even
	// under concurrent verification clicks.
	res := r.db.WithContext(ctx).
		Model(&models.EmailToken{}).
		Where("token = ? AND consumed_at IS NULL AND expires_at > ?", token, now).
		Update("consumed_at", now)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var record models.EmailToken
	err := r.db.WithContext(ctx).First(&record, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
