package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

type fakeProfileRepo struct {
	profiles      []*models.Profile
	createCalls   int
	setStudentErr error
}

func (f *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) FindByStudentID(_ context.Context, studentID string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.StudentID != nil && *p.StudentID == studentID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *models.Profile) error {
	f.createCalls++
	f.profiles = append(f.profiles, profile)
	return nil
}

func (f *fakeProfileRepo) SetStudentID(_ context.Context, id uuid.UUID, studentID string) error {
	if f.setStudentErr != nil {
		return f.setStudentErr
	}
	for _, p := range f.profiles {
		if p.ID == id {
			p.StudentID = &studentID
		}
	}
	return nil
}

func (f *fakeProfileRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	return nil
}

func (f *fakeProfileRepo) UpdatePhotoURL(_ context.Context, id uuid.UUID, prev *string, next string) (bool, error) {
	return true, nil
}

func (f *fakeProfileRepo) MarkEmailConfirmed(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, p := range f.profiles {
		if p.ID == id {
			stamp := at
			p.EmailConfirmedAt = &stamp
		}
	}
	return nil
}

type fakeSessionRepo struct {
	sessions []*models.Session
	revoked  []string
}

func (f *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionRepo) FindByToken(_ context.Context, token string, now time.Time) (*models.Session, error) {
	for _, s := range f.sessions {
		if s.Token == token && s.Active(now) {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string, at time.Time) error {
	f.revoked = append(f.revoked, token)
	for _, s := range f.sessions {
		if s.Token == token {
			stamp := at
			s.RevokedAt = &stamp
		}
	}
	return nil
}

type fakeEmailTokenRepo struct {
	tokens []*models.EmailToken
}

func (f *fakeEmailTokenRepo) Create(_ context.Context, token *models.EmailToken) error {
	f.tokens = append(f.tokens, token)
	return nil
}

func (f *fakeEmailTokenRepo) Consume(_ context.Context, token string, now time.Time) (*models.EmailToken, error) {
	for _, t := range f.tokens {
		if t.Token == token && t.ConsumedAt == nil && t.ExpiresAt.After(now) {
			stamp := now
			t.ConsumedAt = &stamp
			return t, nil
		}
	}
	return nil, nil
}

type fakeMailer struct {
	sent []string // recipient addresses
	err  error
}

func (f *fakeMailer) SendVerification(to, verifyURL string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}
