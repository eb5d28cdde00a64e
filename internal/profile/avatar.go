package profile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

// MaxAvatarBytes caps avatar uploads at 2 MiB.
const MaxAvatarBytes = 2 << 20

// avatarExtensions maps the accepted image types to stored file extensions.
var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ObjectStore is the slice of the bucket client the avatar flow needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromPublicURL(url string) (string, bool)
}

// UpdateAvatar replaces the member's avatar: validate, best-effort delete of
// the previous object, upload under a fresh timestamped key, then persist
// the new address conditionally on the previously observed one. Any failure
// after validation leaves the stored reference unchanged; the prior delete,
// if it already ran, is an accepted inconsistency window.
func (s *Service) UpdateAvatar(ctx context.Context, id uuid.UUID, data []byte) (string, error) {
	contentType, err := validateAvatar(data)
	if err != nil {
		return "", err
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	prev := profile.PhotoURL
	if prev != nil {
		if key, ok := s.store.KeyFromPublicURL(*prev); ok {
			// Advisory cleanup only; a failed delete must not abort the flow.
			if err := s.store.Remove(ctx, key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("remove stale avatar")
			}
		}
	}

	key := fmt.Sprintf("avatars/%s/%d%s", id, s.now().UnixMilli(), avatarExtensions[contentType])
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	url := s.store.PublicURL(key)

	ok, err := s.profiles.UpdatePhotoURL(ctx, id, prev, url)
	if err != nil {
		return "", fmt.Errorf("persist avatar url: %w", err)
	}
	if !ok {
		// The stored reference moved under us: another replacement won.
		return "", models.ErrAvatarConflict
	}
	return url, nil
}

// validateAvatar checks size and sniffed MIME type before any remote call.
func validateAvatar(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", models.ErrUnsupportedImage)
	}
	if len(data) > MaxAvatarBytes {
		return "", models.ErrImageTooLarge
	}
	contentType := http.DetectContentType(data)
	if _, ok := avatarExtensions[contentType]; !ok {
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedImage, contentType)
	}
	return contentType, nil
}
