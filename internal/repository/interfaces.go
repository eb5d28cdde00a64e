// Package repository defines persistence interfaces consumed by the portal
// services, plus their GORM implementations. Repositories return nil (not an
// error) when a lookup finds nothing.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

// ProfileRepository persists member profiles.
type ProfileRepository interface {
	// FindByID returns the profile or nil when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// FindByEmail returns the profile with the given email or nil.
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)

	// FindByStudentID returns the profile holding the student id or nil.
	FindByStudentID(ctx context.Context, studentID string) (*models.Profile, error)

	// Create inserts a new profile.
	Create(ctx context.Context, profile *models.Profile) error

	// SetStudentID writes the student id onto an existing profile.
	SetStudentID(ctx context.Context, id uuid.UUID, studentID string) error

	// UpdateFields applies the given column updates scoped by profile id.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error

	// UpdatePhotoURL persists a new avatar reference only when the stored
	// reference still equals prev. Returns false when the conditional
	// update matched no row.
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, prev *string, next string) (bool, error)

	// MarkEmailConfirmed stamps the email confirmation time.
	MarkEmailConfirmed(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SessionRepository persists login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error

	// FindByToken returns the session for the token, or nil when missing,
	// expired, or revoked.
	FindByToken(ctx context.Context, token string, now time.Time) (*models.Session, error)

	// Revoke marks the session unusable.
	Revoke(ctx context.Context, token string, at time.Time) error
}

// EmailTokenRepository persists email verification tokens.
type EmailTokenRepository interface {
	Create(ctx context.Context, token *models.EmailToken) error

	// Consume atomically marks the token consumed and returns it. Returns
	// nil when the token is unknown, expired, or already consumed.
	Consume(ctx context.Context, token string, now time.Time) (*models.EmailToken, error)
}

// InvitationRepository reads and consumes sign-up invitations.
type InvitationRepository interface {
	// FindValid returns the invitation matching token with used=false and
	// expires_at strictly after now, or nil.
	FindValid(ctx context.Context, token string, now time.Time) (*models.Invitation, error)

	// MarkUsed flags the invitation as consumed.
	MarkUsed(ctx context.Context, token string) error
}

// SettingsRepository reads the registration policy.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// EventRepository reads dashboard events.
type EventRepository interface {
	// Upcoming returns events dated at or after now, soonest first.
	Upcoming(ctx context.Context, now time.Time, limit int) ([]models.Event, error)
}
