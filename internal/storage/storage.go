package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the object storage operations used for site images.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows a PUT
	// of objectKey directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// PublicURL is the permanent address readers use for objectKey.
	PublicURL(objectKey string) string
}
