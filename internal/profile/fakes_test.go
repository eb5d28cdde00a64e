package profile

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

type fakeProfileRepo struct {
	profiles       []*models.Profile
	fieldUpdates   []map[string]any
	photoConflict  bool
	photoUpdates   []string
	photoUpdateErr error
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
	return nil
}

func (f *fakeProfileRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	f.fieldUpdates = append(f.fieldUpdates, fields)
	return nil
}

func (f *fakeProfileRepo) UpdatePhotoURL(_ context.Context, id uuid.UUID, prev *string, next string) (bool, error) {
	if f.photoUpdateErr != nil {
		return false, f.photoUpdateErr
	}
	if f.photoConflict {
		return false, nil
	}
	f.photoUpdates = append(f.photoUpdates, next)
	for _, p := range f.profiles {
		if p.ID == id {
			url := next
			p.PhotoURL = &url
		}
	}
	return true, nil
}

func (f *fakeProfileRepo) MarkEmailConfirmed(_ context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type fakeObjectStore struct {
	puts      []string
	removes   []string
	removeErr error
	putErr    error
}

func (f *fakeObjectStore) Put(_ context.Context, key string, body io.Reader, size int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts = append(f.puts, key)
	return nil
}

func (f *fakeObjectStore) Remove(_ context.Context, key string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removes = append(f.removes, key)
	return nil
}

func (f *fakeObjectStore) PublicURL(key string) string {
	return "http://s3.test/avatars-bucket/" + key
}

func (f *fakeObjectStore) KeyFromPublicURL(url string) (string, bool) {
	const prefix = "http://s3.test/avatars-bucket/"
	if len(url) <= len(prefix) || url[:len(prefix)] != prefix {
		return "", false
	}
	return url[len(prefix):], true
}
