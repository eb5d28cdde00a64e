package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

type fakeProfileRepo struct {
	profiles []*models.Profile
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
	f.profiles = append(f.profiles, profile)
	return nil
}

func (f *fakeProfileRepo) SetStudentID(_ context.Context, id uuid.UUID, studentID string) error {
	for _, p := range f.profiles {
		if p.ID == id {
			p.StudentID = &studentID
		}
	}
	return nil
}

func (f *fakeProfileRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	for _, p := range f.profiles {
		if p.ID == id {
			if v, ok := fields["full_name"].(string); ok {
				p.FullName = v
			}
			if v, ok := fields["student_id"].(string); ok {
				p.StudentID = &v
			}
		}
	}
	return nil
}

func (f *fakeProfileRepo) UpdatePhotoURL(_ context.Context, id uuid.UUID, prev *string, next string) (bool, error) {
	for _, p := range f.profiles {
		if p.ID != id {
			continue
		}
		if (p.PhotoURL == nil) != (prev == nil) {
			return false, nil
		}
		if p.PhotoURL != nil && *p.PhotoURL != *prev {
			return false, nil
		}
		p.PhotoURL = &next
		return true, nil
	}
	return false, nil
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

type fakeInvitationRepo struct {
	invitations []*models.Invitation
}

func (f *fakeInvitationRepo) FindValid(_ context.Context, token string, now time.Time) (*models.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.Token == token && !inv.Used && inv.ExpiresAt.After(now) {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitationRepo) MarkUsed(_ context.Context, token string) error {
	for _, inv := range f.invitations {
		if inv.Token == token {
			inv.Used = true
		}
	}
	return nil
}

type fakeSettingsRepo struct {
	settings models.Settings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*models.Settings, error) {
	s := f.settings
	return &s, nil
}

type fakeEventRepo struct {
	events []models.Event
}

func (f *fakeEventRepo) Upcoming(_ context.Context, now time.Time, limit int) ([]models.Event, error) {
	var out []models.Event
	for _, e := range f.events {
		if !e.Date.Before(now) {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) SendVerification(to, _ string) error {
	f.sent = append(f.sent, to)
	return nil
}

type fakeObjectStore struct {
	objects map[string][]byte
	removed []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeObjectStore) Remove(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStore) PublicURL(key string) string {
	return fmt.Sprintf("http://s3.test/avatars/%s", key)
}

func (f *fakeObjectStore) KeyFromPublicURL(url string) (string, bool) {
	const prefix = "http://s3.test/avatars/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
