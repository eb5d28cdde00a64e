package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a club event shown on the dashboard. Read-only in this service.
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"type:text;not null"`
	Date      time.Time `gorm:"not null;index"`
	Time      string    `gorm:"type:text"`
	Location  string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
