package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"f3region/site-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Storage implements the FileStorage interface using an S3-compatible backend.
type s3Storage struct {
	presignClient *s3.PresignClient
	bucketName    string
	publicBaseURL string
}

// NewS3Storage creates a new S3 storage service instance.
func NewS3Storage(ctx context.Context, cfg config.S3Config) (FileStorage, error) {
	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := cfg.EndpointURL()
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			// Path-style addressing for S3-compatible services like MinIO.
			o.UsePathStyle = true
		}
	})

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		publicBase = defaultPublicBase(cfg)
	}

	slog.Info("s3 storage initialized", "endpoint", endpoint, "bucket", cfg.BucketName)

	return &s3Storage{
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    cfg.BucketName,
		publicBaseURL: publicBase,
	}, nil
}

// defaultPublicBase is the bucket's own URL when no CDN base is configured.
func defaultPublicBase(cfg config.S3Config) string {
	if endpoint := cfg.EndpointURL(); endpoint != "" {
		return strings.TrimRight(endpoint, "/") + "/" + cfg.BucketName
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.BucketName, cfg.Region)
}

// GeneratePresignedUploadURL creates a temporary URL for uploading (PUT).
func (s *s3Storage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}

	presignParams := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType), // Client MUST send the same header on upload
	}

	req, err := s.presignClient.PresignPutObject(ctx, presignParams, s3.WithPresignExpires(expires))
	if err != nil {
		slog.Error("presign put failed", "key", objectKey, "error", err)
		return "", err
	}
	return req.URL, nil
}

// PublicURL joins the public base and the object key.
func (s *s3Storage) PublicURL(objectKey string) string {
	return s.publicBaseURL + "/" + objectKey
}
