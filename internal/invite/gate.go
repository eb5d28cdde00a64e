// Package invite decides whether sign-up is open to the public or gated by
// a single-use invitation token.
package invite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
	"github.com/SHAHRIARJAHIN/club-management/internal/repository"
)

// Decision is what the gate passes through to the sign-up view.
type Decision struct {
	// AllowedDomains is the email domain allow-list; empty means no
	// restriction is enforced by the gate.
	AllowedDomains []string
	// InvitationToken is the validated token, empty when public sign-ups
	// are open.
	InvitationToken string
}

// Gate evaluates the registration policy.
type Gate struct {
	settings    repository.SettingsRepository
	invitations repository.InvitationRepository
	now         func() time.Time
}

// NewGate wires an invitation gate.
func NewGate(settings repository.SettingsRepository, invitations repository.InvitationRepository) *Gate {
	return &Gate{settings: settings, invitations: invitations, now: time.Now}
}

// Check runs the sign-up gate for the given query token. When public
// sign-ups are disabled: an absent token yields ErrInvitationRequired, and a
// token that is unknown, used, or expired yields ErrInvitationInvalid.
func (g *Gate) Check(ctx context.Context, token string) (*Decision, error) {
	settings, err := g.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	decision := &Decision{AllowedDomains: settings.DomainList()}

	if settings.AllowPublicSignups {
		return decision, nil
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, models.ErrInvitationRequired
	}

	invitation, err := g.invitations.FindValid(ctx, token, g.now())
	if err != nil {
		return nil, fmt.Errorf("lookup invitation: %w", err)
	}
	if invitation == nil {
		return nil, models.ErrInvitationInvalid
	}

	decision.InvitationToken = token
	return decision, nil
}

// Consume marks a validated invitation as used. Called once sign-up
// completes so the token cannot be replayed.
func (g *Gate) Consume(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := g.invitations.MarkUsed(ctx, token); err != nil {
		return fmt.Errorf("mark invitation used: %w", err)
	}
	return nil
}

// DomainAllowed reports whether the email's domain appears in the
// allow-list. An empty list allows everything.
func DomainAllowed(email string, domains []string) bool {
	if len(domains) == 0 {
		return true
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, d := range domains {
		if strings.EqualFold(strings.TrimSpace(d), domain) {
			return true
		}
	}
	return false
}
