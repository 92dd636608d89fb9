package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/repository"
)

// RegionService reads and writes the singleton Region.
type RegionService interface {
	// GetRegion returns the stored Region, creating a placeholder first if
	// none exists. Store failures come back as ErrConfigUnavailable.
	GetRegion(ctx context.Context) (*domain.Region, error)
	// UpsertRegion merges update into the stored Region, or creates one from
	// it. created tells which happened.
	UpsertRegion(ctx context.Context, update domain.RegionUpdate) (id string, created bool, err error)
}

// regionService implements the RegionService interface.
type regionService struct {
	regionRepo repository.RegionRepository

	// Serialises find-then-create so this process never inserts two
	// singletons.
	createMu sync.Mutex
}

// NewRegionService creates a new instance of regionService.
func NewRegionService(regionRepo repository.RegionRepository) RegionService {
	return &regionService{regionRepo: regionRepo}
}

func (s *regionService) GetRegion(ctx context.Context) (*domain.Region, error) {
	region, err := s.regionRepo.FindOne(ctx)
	if err == nil {
		return region, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrConfigUnavailable, err)
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	// Someone may have created it while we waited.
	region, err = s.regionRepo.FindOne(ctx)
	if err == nil {
		return region, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrConfigUnavailable, err)
	}

	placeholder := domain.DefaultRegion()
	if _, err := s.regionRepo.Create(ctx, &placeholder); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigUnavailable, err)
	}
	slog.Info("region not configured, stored placeholder", "id", placeholder.ID)
	return &placeholder, nil
}

func (s *regionService) UpsertRegion(ctx context.Context, update domain.RegionUpdate) (string, bool, error) {
	if update.MapZoom != nil && *update.MapZoom < 0 {
		return "", false, validationError("map_zoom must be zero or greater")
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	existing, err := s.regionRepo.FindOne(ctx)
	switch {
	case err == nil:
		updated, err := s.regionRepo.UpdateByID(ctx, existing.ID, update)
		if err != nil {
			return "", false, storeError("update region", err)
		}
		return updated.ID, false, nil
	case errors.Is(err, repository.ErrNotFound):
		var region domain.Region
		update.Apply(&region)
		id, err := s.regionRepo.Create(ctx, &region)
		if err != nil {
			return "", false, storeError("create region", err)
		}
		return id, true, nil
	default:
		return "", false, storeError("find region", err)
	}
}
