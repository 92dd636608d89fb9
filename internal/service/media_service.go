package service

import (
	"context"
	"path"
	"strings"
	"time"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/storage"

	"github.com/google/uuid"
)

// MediaService hands out direct-upload URLs for location and region images.
type MediaService interface {
	RequestUpload(ctx context.Context, kind domain.MediaKind, fileName, contentType string) (*domain.MediaUpload, error)
}

// mediaService implements the MediaService interface.
type mediaService struct {
	files  storage.FileStorage
	expiry time.Duration
	now    func() time.Time
}

// NewMediaService creates a new instance of mediaService. A nil files
// disables uploads; every request then fails with ErrMediaDisabled.
func NewMediaService(files storage.FileStorage) MediaService {
	return &mediaService{
		files:  files,
		expiry: storage.DefaultPresignedURLExpiry,
		now:    time.Now,
	}
}

func (s *mediaService) RequestUpload(ctx context.Context, kind domain.MediaKind, fileName, contentType string) (*domain.MediaUpload, error) {
	if s.files == nil {
		return nil, ErrMediaDisabled
	}
	if kind != domain.MediaLocation && kind != domain.MediaRegion {
		return nil, validationError("kind must be %q or %q", domain.MediaLocation, domain.MediaRegion)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "image/") {
		return nil, validationError("contentType must be an image type")
	}

	// Keys never reuse the client's file name, only its extension.
	key := string(kind) + "s/" + uuid.NewString() + strings.ToLower(path.Ext(fileName))

	uploadURL, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, s.expiry)
	if err != nil {
		return nil, storeError("presign upload", err)
	}
	return &domain.MediaUpload{
		Key:         key,
		ContentType: contentType,
		UploadURL:   uploadURL,
		PublicURL:   s.files.PublicURL(key),
		ExpiresAt:   s.now().Add(s.expiry).UTC(),
	}, nil
}
