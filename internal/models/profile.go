package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership status values a profile can hold. Distinct from session
// validity: an expired membership can still sign in.
const (
	MembershipActive   = "active"
	MembershipPending  = "pending"
	MembershipExpired  = "expired"
	MembershipRejected = "rejected"
)

// Profile is the account record of a club member. It carries both the
// credential state (password hash, email confirmation) and the
// club-membership data extending it.
type Profile struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email            string    `gorm:"type:text;uniqueIndex;not null"`
	FullName         string    `gorm:"type:text;not null"`
	StudentID        *string   `gorm:"type:text;uniqueIndex"`
	Phone            *string   `gorm:"type:text"`
	Department       *string   `gorm:"type:text"`
	Batch            *string   `gorm:"type:text"`
	MembershipStatus string    `gorm:"type:text;not null;default:pending"`
	MembershipTier   *string   `gorm:"type:text"`
	PhotoURL         *string   `gorm:"type:text"`
	ValidUntil       *time.Time
	PasswordHash     string `gorm:"type:text;not null"`
	EmailConfirmedAt *time.Time
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`

	Sessions    []Session    `gorm:"constraint:OnDelete:CASCADE"`
	EmailTokens []EmailToken `gorm:"constraint:OnDelete:CASCADE"`
}

// EmailConfirmed reports whether the account completed email verification.
func (p *Profile) EmailConfirmed() bool {
	return p.EmailConfirmedAt != nil
}
