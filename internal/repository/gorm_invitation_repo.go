package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

// GormInvitationRepository is the PostgreSQL implementation of InvitationRepository.
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewGormInvitationRepository returns an invitation repository over the given handle.
func NewGormInvitationRepository(db *gorm.DB) *GormInvitationRepository {
	return &GormInvitationRepository{db: db}
}

func (r *GormInvitationRepository) FindValid(ctx context.Context, token string, now time.Time) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		First(&invitation, "token = ? AND used = false AND expires_at > ?", token, now).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *GormInvitationRepository) MarkUsed(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("token = ?", token).
		Update("used", true).Error
}
