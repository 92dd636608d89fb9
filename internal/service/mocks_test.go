package service

import (
	"context"
	"time"

	"f3region/site-api/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRegionRepository is a mock implementation of repository.RegionRepository.
type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) FindOne(ctx context.Context) (*domain.Region, error) {
	args := m.Called(ctx)
	if r, ok := args.Get(0).(*domain.Region); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegionRepository) Create(ctx context.Context, region *domain.Region) (string, error) {
	args := m.Called(ctx, region)
	return args.String(0), args.Error(1)
}

func (m *MockRegionRepository) UpdateByID(ctx context.Context, id string, update domain.RegionUpdate) (*domain.Region, error) {
	args := m.Called(ctx, id, update)
	if r, ok := args.Get(0).(*domain.Region); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockFileStorage is a mock implementation of storage.FileStorage.
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) PublicURL(objectKey string) string {
	args := m.Called(objectKey)
	return args.String(0)
}
