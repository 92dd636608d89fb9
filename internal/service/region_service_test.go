package service

import (
	"context"
	"errors"
	"testing"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestGetRegionStoresPlaceholderOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewRegionService(store.Regions())

	first, err := svc.GetRegion(ctx)
	require.NoError(t, err)
	assert.True(t, first.Placeholder)
	assert.Equal(t, "Your Region", first.RegionName)
	assert.NotEmpty(t, first.ID)

	second, err := svc.GetRegion(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestUpsertRegionCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewRegionService(store.Regions())

	id, created, err := svc.UpsertRegion(ctx, domain.RegionUpdate{RegionName: ptr("North Shore")})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.UpsertRegion(ctx, domain.RegionUpdate{HeroTitle: ptr("Welcome")})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, again)

	region, err := svc.GetRegion(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, region.ID)
	assert.Equal(t, "North Shore", region.RegionName, "unset fields keep their value")
	assert.Equal(t, "Welcome", region.HeroTitle)
	assert.False(t, region.Placeholder)
}

func TestUpsertRegionReplacesPlaceholder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewRegionService(store.Regions())

	placeholder, err := svc.GetRegion(ctx)
	require.NoError(t, err)

	id, created, err := svc.UpsertRegion(ctx, domain.RegionUpdate{RegionName: ptr("North Shore")})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, placeholder.ID, id)

	region, err := svc.GetRegion(ctx)
	require.NoError(t, err)
	assert.False(t, region.Placeholder)
}

func TestUpsertRegionRejectsNegativeZoom(t *testing.T) {
	svc := NewRegionService(memory.NewStore().Regions())
	_, _, err := svc.UpsertRegion(context.Background(), domain.RegionUpdate{MapZoom: ptr(-1)})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGetRegionStoreFailure(t *testing.T) {
	repo := new(MockRegionRepository)
	repo.On("FindOne", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := NewRegionService(repo).GetRegion(context.Background())
	assert.ErrorIs(t, err, ErrConfigUnavailable)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpsertRegionStoreFailure(t *testing.T) {
	repo := new(MockRegionRepository)
	existing := &domain.Region{ID: "r1"}
	repo.On("FindOne", mock.Anything).Return(existing, nil)
	repo.On("UpdateByID", mock.Anything, "r1", mock.Anything).Return(nil, errors.New("write concern"))

	_, _, err := NewRegionService(repo).UpsertRegion(context.Background(), domain.RegionUpdate{RegionName: ptr("x")})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	repo.AssertExpectations(t)
}
