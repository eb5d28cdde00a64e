package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Settings is the singleton registration policy row.
type Settings struct {
	ID                  uint           `gorm:"primaryKey"`
	AllowPublicSignups  bool           `gorm:"not null;default:false"`
	AllowedEmailDomains datatypes.JSON `gorm:"type:jsonb"`
}

// DomainList decodes the allowed email domains. An empty or absent list
// means no domain restriction.
func (s *Settings) DomainList() []string {
	if len(s.AllowedEmailDomains) == 0 {
		return nil
	}
	var domains []string
	if err := json.Unmarshal(s.AllowedEmailDomains, &domains); err != nil {
		return nil
	}
	return domains
}
