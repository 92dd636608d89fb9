package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestUpload(t *testing.T) {
	files := new(MockFileStorage)
	svc := NewMediaService(files).(*mediaService)
	fixed := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	keyPrefix := mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "locations/") && strings.HasSuffix(key, ".jpg")
	})
	files.On("GeneratePresignedUploadURL", mock.Anything, keyPrefix, "image/jpeg", storage.DefaultPresignedURLExpiry).
		Return("https://bucket.example.com/put?sig=abc", nil)
	files.On("PublicURL", keyPrefix).Return("https://cdn.example.com/locations/x.jpg")

	upload, err := svc.RequestUpload(context.Background(), domain.MediaLocation, "My Photo.JPG", "Image/JPEG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.Key, "locations/"))
	assert.NotContains(t, upload.Key, "Photo")
	assert.Equal(t, "image/jpeg", upload.ContentType)
	assert.Equal(t, "https://bucket.example.com/put?sig=abc", upload.UploadURL)
	assert.Equal(t, "https://cdn.example.com/locations/x.jpg", upload.PublicURL)
	assert.Equal(t, fixed.Add(storage.DefaultPresignedURLExpiry), upload.ExpiresAt)
	files.AssertExpectations(t)
}

func TestRequestUploadValidation(t *testing.T) {
	files := new(MockFileStorage)
	svc := NewMediaService(files)
	ctx := context.Background()

	_, err := svc.RequestUpload(ctx, "avatar", "a.png", "image/png")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.RequestUpload(ctx, domain.MediaRegion, "a.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrValidationFailed)

	files.AssertNotCalled(t, "GeneratePresignedUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestUploadPresignFailure(t *testing.T) {
	files := new(MockFileStorage)
	files.On("GeneratePresignedUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("no credentials"))

	_, err := NewMediaService(files).RequestUpload(context.Background(), domain.MediaRegion, "logo.png", "image/png")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestRequestUploadDisabled(t *testing.T) {
	_, err := NewMediaService(nil).RequestUpload(context.Background(), domain.MediaRegion, "logo.png", "image/png")
	assert.ErrorIs(t, err, ErrMediaDisabled)
}
