package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailToken stores verification tokens for confirming profile email ownership.
type EmailToken struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProfileID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Token      string    `gorm:"type:text;uniqueIndex;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	ConsumedAt *time.Time

	Profile Profile `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProfileID;references:ID"`
}
