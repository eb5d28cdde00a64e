package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/SHAHRIARJAHIN/club-management/internal/crypto"
	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

func newTestService(t *testing.T) (*Service, *fakeProfileRepo, *fakeSessionRepo, *fakeEmailTokenRepo, *fakeMailer) {
	t.Helper()
	profiles := &fakeProfileRepo{}
	sessions := &fakeSessionRepo{}
	tokens := &fakeEmailTokenRepo{}
	mailer := &fakeMailer{}
	svc := NewService(profiles, sessions, tokens, mailer, ServiceConfig{
		SessionTTL:     time.Hour,
		VerifyTokenTTL: time.Hour,
		BaseURL:        "http://portal.test",
	})
	return svc, profiles, sessions, tokens, mailer
}

func seedProfile(t *testing.T, profiles *fakeProfileRepo, email, password, studentID string, confirmed bool) *models.Profile {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	p := &models.Profile{
		ID:           uuid.New(),
		Email:        email,
		FullName:     "Test Member",
		PasswordHash: hash,
	}
	if studentID != "" {
		p.StudentID = &studentID
	}
	if confirmed {
		now := time.Now()
		p.EmailConfirmedAt = &now
	}
	profiles.profiles = append(profiles.profiles, p)
	return p
}

func TestSignUpDuplicateStudentID(t *testing.T) {
	svc, profiles, _, tokens, mailer := newTestService(t)
	seedProfile(t, profiles, "existing@uni.edu", "pw123456", "S-100", true)

	_, err := svc.SignUp(context.Background(), SignUpParams{
		Email:     "new@uni.edu",
		Password:  "pw123456",
		FullName:  "New Member",
		StudentID: "S-100",
	})
	if !errors.Is(err, models.ErrStudentIDTaken) {
		t.Fatalf("err = %v, want ErrStudentIDTaken", err)
	}
	if profiles.createCalls != 0 {
		t.Fatalf("profile created despite duplicate student id")
	}
	if len(tokens.tokens) != 0 || len(mailer.sent) != 0 {
		t.Fatalf("verification work performed despite duplicate student id")
	}
}

func TestSignUpExistingEmail(t *testing.T) {
	tests := []struct {
		name      string
		confirmed bool
		wantErr   error
	}{
		{name: "unverified account", confirmed: false, wantErr: models.ErrEmailUnverified},
		{name: "verified account", confirmed: true, wantErr: models.ErrEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, profiles, _, _, _ := newTestService(t)
			seedProfile(t, profiles, "member@uni.edu", "pw123456", "S-1", tt.confirmed)

			_, err := svc.SignUp(context.Background(), SignUpParams{
				Email:     "Member@uni.edu",
				Password:  "pw123456",
				FullName:  "Member",
				StudentID: "S-2",
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSignUpSuccess(t *testing.T) {
	svc, profiles, _, tokens, mailer := newTestService(t)

	profile, err := svc.SignUp(context.Background(), SignUpParams{
		Email:     "  New@Uni.edu ",
		Password:  "pw123456",
		FullName:  " New Member ",
		StudentID: " S-7 ",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if profile.Email != "new@uni.edu" {
		t.Errorf("email = %q, want normalized", profile.Email)
	}
	if profile.StudentID == nil || *profile.StudentID != "S-7" {
		t.Errorf("student id not persisted")
	}
	if profile.MembershipStatus != models.MembershipPending {
		t.Errorf("membership status = %q, want pending", profile.MembershipStatus)
	}
	if profile.EmailConfirmed() {
		t.Errorf("fresh account must be unconfirmed")
	}
	if len(tokens.tokens) != 1 {
		t.Fatalf("verification tokens = %d, want 1", len(tokens.tokens))
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "new@uni.edu" {
		t.Fatalf("verification mail not sent: %v", mailer.sent)
	}
	if len(profiles.profiles) != 1 {
		t.Fatalf("profiles stored = %d, want 1", len(profiles.profiles))
	}
}

func TestSignUpStudentIDWriteFailure(t *testing.T) {
	svc, profiles, _, _, _ := newTestService(t)
	profiles.setStudentErr = errors.New("column rejected")

	_, err := svc.SignUp(context.Background(), SignUpParams{
		Email:     "new@uni.edu",
		Password:  "pw123456",
		FullName:  "New Member",
		StudentID: "S-9",
	})
	if !errors.Is(err, models.ErrStudentIDWrite) {
		t.Fatalf("err = %v, want ErrStudentIDWrite", err)
	}
}

func TestSignUpMailFailureIsNotFatal(t *testing.T) {
	svc, _, _, _, mailer := newTestService(t)
	mailer.err = errors.New("relay down")

	if _, err := svc.SignUp(context.Background(), SignUpParams{
		Email:     "new@uni.edu",
		Password:  "pw123456",
		FullName:  "New Member",
		StudentID: "S-9",
	}); err != nil {
		t.Fatalf("sign up failed on mail delivery: %v", err)
	}
}

func TestSignInInvalidCredentials(t *testing.T) {
	svc, profiles, sessions, _, _ := newTestService(t)
	seedProfile(t, profiles, "member@uni.edu", "correct-pw", "S-1", true)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@uni.edu", password: "correct-pw"},
		{name: "wrong password", email: "member@uni.edu", password: "wrong-pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.SignIn(context.Background(), tt.email, tt.password)
			if !errors.Is(err, models.ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("sessions issued for failed sign-ins")
	}
}

func TestSignInUnconfirmedEmailRevokesSession(t *testing.T) {
	svc, profiles, sessions, _, _ := newTestService(t)
	seedProfile(t, profiles, "member@uni.edu", "pw123456", "S-1", false)

	session, _, err := svc.SignIn(context.Background(), "member@uni.edu", "pw123456")
	if !errors.Is(err, models.ErrEmailNotConfirmed) {
		t.Fatalf("err = %v, want ErrEmailNotConfirmed", err)
	}
	if session != nil {
		t.Fatalf("session returned for unconfirmed account")
	}
	// The issued session must have been revoked again.
	if len(sessions.sessions) != 1 || sessions.sessions[0].RevokedAt == nil {
		t.Fatalf("just-issued session not revoked")
	}
}

func TestSignInSuccess(t *testing.T) {
	svc, profiles, _, _, _ := newTestService(t)
	seeded := seedProfile(t, profiles, "member@uni.edu", "pw123456", "S-1", true)

	session, profile, err := svc.SignIn(context.Background(), "Member@uni.edu", "pw123456")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if profile.ID != seeded.ID {
		t.Errorf("wrong profile resolved")
	}
	if session.Token == "" || !session.Active(time.Now()) {
		t.Errorf("session not usable: %+v", session)
	}

	got, gotProfile, err := svc.SessionProfile(context.Background(), session.Token)
	if err != nil || got == nil || gotProfile == nil {
		t.Fatalf("session lookup failed: %v", err)
	}
}

func TestSignOut(t *testing.T) {
	svc, profiles, sessions, _, _ := newTestService(t)
	seedProfile(t, profiles, "member@uni.edu", "pw123456", "S-1", true)

	session, _, err := svc.SignIn(context.Background(), "member@uni.edu", "pw123456")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := svc.SignOut(context.Background(), session.Token); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if len(sessions.revoked) != 1 {
		t.Fatalf("session not revoked")
	}
	got, _, err := svc.SessionProfile(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	if got != nil {
		t.Fatalf("revoked session still resolves")
	}
}

func TestVerifyEmail(t *testing.T) {
	svc, profiles, _, tokens, _ := newTestService(t)
	profile, err := svc.SignUp(context.Background(), SignUpParams{
		Email:     "new@uni.edu",
		Password:  "pw123456",
		FullName:  "New Member",
		StudentID: "S-7",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	token := tokens.tokens[0].Token
	if err := svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	stored, _ := profiles.FindByID(context.Background(), profile.ID)
	if !stored.EmailConfirmed() {
		t.Fatalf("confirmation not stamped")
	}

	// Single use: a second consumption fails.
	if err := svc.VerifyEmail(context.Background(), token); !errors.Is(err, models.ErrTokenInvalid) {
		t.Fatalf("second verify err = %v, want ErrTokenInvalid", err)
	}
	if err := svc.VerifyEmail(context.Background(), "unknown"); !errors.Is(err, models.ErrTokenInvalid) {
		t.Fatalf("unknown token err = %v, want ErrTokenInvalid", err)
	}
}

func TestResendVerification(t *testing.T) {
	svc, profiles, _, tokens, mailer := newTestService(t)
	seedProfile(t, profiles, "pending@uni.edu", "pw123456", "S-1", false)
	seedProfile(t, profiles, "done@uni.edu", "pw123456", "S-2", true)

	tests := []struct {
		name     string
		email    string
		wantSent int
	}{
		{name: "unconfirmed account", email: "pending@uni.edu", wantSent: 1},
		{name: "confirmed account", email: "done@uni.edu", wantSent: 1},
		{name: "unknown email", email: "ghost@uni.edu", wantSent: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ResendVerification(context.Background(), tt.email); err != nil {
				t.Fatalf("resend: %v", err)
			}
			if len(mailer.sent) != tt.wantSent {
				t.Fatalf("mails sent = %d, want %d", len(mailer.sent), tt.wantSent)
			}
		})
	}
	if len(tokens.tokens) != 1 {
		t.Fatalf("tokens issued = %d, want 1", len(tokens.tokens))
	}
}
