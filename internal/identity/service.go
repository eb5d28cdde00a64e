// Package identity implements sign-up, sign-in, session management, and
// email verification over the profile store.
package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/SHAHRIARJAHIN/club-management/internal/crypto"
	"github.com/SHAHRIARJAHIN/club-management/internal/mail"
	"github.com/SHAHRIARJAHIN/club-management/internal/models"
	"github.com/SHAHRIARJAHIN/club-management/internal/repository"
)

// ServiceConfig carries identity tunables.
type ServiceConfig struct {
	SessionTTL     time.Duration
	VerifyTokenTTL time.Duration
	// BaseURL is the externally reachable origin used in verification links.
	BaseURL string
}

// Service provides authentication business logic.
type Service struct {
	profiles    repository.ProfileRepository
	sessions    repository.SessionRepository
	emailTokens repository.EmailTokenRepository
	mailer      mail.Mailer
	config      ServiceConfig

	listeners listenerRegistry
	now       func() time.Time
}

// NewService wires an identity service.
func NewService(
	profiles repository.ProfileRepository,
	sessions repository.SessionRepository,
	emailTokens repository.EmailTokenRepository,
	mailer mail.Mailer,
	config ServiceConfig,
) *Service {
	if config.SessionTTL <= 0 {
		config.SessionTTL = 7 * 24 * time.Hour
	}
	if config.VerifyTokenTTL <= 0 {
		config.VerifyTokenTTL = 24 * time.Hour
	}
	return &Service{
		profiles:    profiles,
		sessions:    sessions,
		emailTokens: emailTokens,
		mailer:      mailer,
		config:      config,
		now:         time.Now,
	}
}

// SignUpParams is the validated sign-up form input.
type SignUpParams struct {
	Email     string
	Password  string
	FullName  string
	StudentID string
}

// SignUp registers a new account. The student id uniqueness check runs
// before any account work; an already-registered email maps to
// ErrEmailUnverified when that account never confirmed, ErrEmailTaken
// otherwise. The student id is written as a second, dependent write whose
// failure surfaces as ErrStudentIDWrite, distinct from creation failure.
func (s *Service) SignUp(ctx context.Context, params SignUpParams) (*models.Profile, error) {
	email := normalizeEmail(params.Email)
	studentID := strings.TrimSpace(params.StudentID)

	existing, err := s.profiles.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("lookup student id: %w", err)
	}
	if existing != nil {
		return nil, models.ErrStudentIDTaken
	}

	byEmail, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if byEmail != nil {
		if !byEmail.EmailConfirmed() {
			return nil, models.ErrEmailUnverified
		}
		return nil, models.ErrEmailTaken
	}

	hash, err := crypto.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := &models.Profile{
		ID:               uuid.New(),
		Email:            email,
		FullName:         strings.TrimSpace(params.FullName),
		MembershipStatus: models.MembershipPending,
		PasswordHash:     hash,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	if err := s.profiles.SetStudentID(ctx, profile.ID, studentID); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStudentIDWrite, err)
	}
	profile.StudentID = &studentID

	if err := s.sendVerification(ctx, profile); err != nil {
		// Delivery is best-effort; the member can resend from the waiting view.
		log.Warn().Err(err).Str("email", email).Msg("send verification mail")
	}

	log.Info().Str("profile_id", profile.ID.String()).Str("email", email).Msg("profile registered")
	return profile, nil
}

// SignIn verifies credentials and issues a session. When the account never
// confirmed its email the just-issued session is revoked immediately and
// ErrEmailNotConfirmed is returned with no session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.Session, *models.Profile, error) {
	email = normalizeEmail(email)

	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup email: %w", err)
	}
	if profile == nil {
		return nil, nil, models.ErrInvalidCredentials
	}
	if err := crypto.CheckPassword(profile.PasswordHash, password); err != nil {
		return nil, nil, models.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, profile.ID)
	if err != nil {
		return nil, nil, err
	}

	if !profile.EmailConfirmed() {
		if err := s.sessions.Revoke(ctx, session.Token, s.now()); err != nil {
			log.Error().Err(err).Msg("revoke unconfirmed session")
		}
		return nil, nil, models.ErrEmailNotConfirmed
	}

	s.listeners.notify(session)
	return session, profile, nil
}

// SignOut revokes the session for the given token.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token, s.now()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.listeners.notify(nil)
	return nil
}

// SessionProfile resolves a session token to its profile. Both return values
// are nil when the token is missing, expired, or revoked: an absent session
// is a normal branch, not an error.
func (s *Service) SessionProfile(ctx context.Context, token string) (*models.Session, *models.Profile, error) {
	if token == "" {
		return nil, nil, nil
	}
	session, err := s.sessions.FindByToken(ctx, token, s.now())
	if err != nil {
		return nil, nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, nil, nil
	}
	profile, err := s.profiles.FindByID(ctx, session.ProfileID)
	if err != nil {
		return nil, nil, fmt.Errorf("find profile: %w", err)
	}
	if profile == nil {
		return nil, nil, nil
	}
	return session, profile, nil
}

// VerifyEmail consumes a verification token and stamps the confirmation time.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	record, err := s.emailTokens.Consume(ctx, token, s.now())
	if err != nil {
		return fmt.Errorf("consume token: %w", err)
	}
	if record == nil {
		return models.ErrTokenInvalid
	}
	if err := s.profiles.MarkEmailConfirmed(ctx, record.ProfileID, s.now()); err != nil {
		return fmt.Errorf("mark confirmed: %w", err)
	}
	log.Info().Str("profile_id", record.ProfileID.String()).Msg("email verified")
	return nil
}

// ResendVerification issues a fresh token for an unconfirmed account. The
// response is identical whether the email exists, is confirmed, or is
// unknown, so the endpoint cannot be used to probe registrations.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	profile, err := s.profiles.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("lookup email: %w", err)
	}
	if profile == nil || profile.EmailConfirmed() {
		return nil
	}
	if err := s.sendVerification(ctx, profile); err != nil {
		return fmt.Errorf("send verification: %w", err)
	}
	return nil
}

func (s *Service) createSession(ctx context.Context, profileID uuid.UUID) (*models.Session, error) {
	token, err := crypto.NewToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	session := &models.Session{
		ID:        uuid.New(),
		ProfileID: profileID,
		Token:     token,
		ExpiresAt: s.now().Add(s.config.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func (s *Service) sendVerification(ctx context.Context, profile *models.Profile) error {
	token, err := crypto.NewToken()
	if err != nil {
		return err
	}
	record := &models.EmailToken{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		Token:     token,
		ExpiresAt: s.now().Add(s.config.VerifyTokenTTL),
	}
	if err := s.emailTokens.Create(ctx, record); err != nil {
		return err
	}
	verifyURL := fmt.Sprintf("%s/auth/verify?token=%s", strings.TrimRight(s.config.BaseURL, "/"), token)
	return s.mailer.SendVerification(profile.Email, verifyURL)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
