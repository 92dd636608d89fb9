package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/repository"
)

// LocationService exposes workout sites to readers and the admin mutation
// protocol to the console.
type LocationService interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	GetLocation(ctx context.Context, id string) (*domain.Location, error)
	CreateLocation(ctx context.Context, location domain.Location) (*domain.Location, error)
	UpdateLocation(ctx context.Context, id string, update domain.LocationUpdate) (*domain.Location, error)
	// DeleteLocation removes the location and all of its workouts in one
	// transaction and reports how many workouts went with it.
	DeleteLocation(ctx context.Context, id string) (int64, error)
}

// locationService implements the LocationService interface.
type locationService struct {
	locationRepo repository.LocationRepository
	workoutRepo  repository.WorkoutRepository
	tx           repository.Transactor
}

// NewLocationService creates a new instance of locationService.
func NewLocationService(locationRepo repository.LocationRepository, workoutRepo repository.WorkoutRepository, tx repository.Transactor) LocationService {
	return &locationService{
		locationRepo: locationRepo,
		workoutRepo:  workoutRepo,
		tx:           tx,
	}
}

func (s *locationService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	locations, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		return nil, storeError("list locations", err)
	}
	return locations, nil
}

func (s *locationService) GetLocation(ctx context.Context, id string) (*domain.Location, error) {
	if id == "" {
		return nil, validationError("id is required")
	}
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, locationNotFound(id)
		}
		return nil, storeError("find location", err)
	}
	return location, nil
}

// CreateLocation stores a new site. Name and mapLink are required.
func (s *locationService) CreateLocation(ctx context.Context, location domain.Location) (*domain.Location, error) {
	location.ID = ""
	location.Name = strings.TrimSpace(location.Name)
	location.MapLink = strings.TrimSpace(location.MapLink)
	if err := validateName(location.Name); err != nil {
		return nil, err
	}
	if err := validateMapLink(location.MapLink); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, location.Name, ""); err != nil {
		return nil, err
	}

	if _, err := s.locationRepo.Create(ctx, &location); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateName(location.Name)
		}
		return nil, storeError("create location", err)
	}
	slog.Info("location created", "id", location.ID, "name", location.Name)
	return &location, nil
}

// UpdateLocation merges the set fields of update onto the stored site.
func (s *locationService) UpdateLocation(ctx context.Context, id string, update domain.LocationUpdate) (*domain.Location, error) {
	if id == "" {
		return nil, validationError("_id is required")
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		update.Name = &name
		if err := s.checkNameFree(ctx, name, id); err != nil {
			return nil, err
		}
	}
	if update.MapLink != nil {
		link := strings.TrimSpace(*update.MapLink)
		if err := validateMapLink(link); err != nil {
			return nil, err
		}
		update.MapLink = &link
	}

	location, err := s.locationRepo.UpdateByID(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, locationNotFound(id)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, duplicateName(*update.Name)
		}
		return nil, storeError("update location", err)
	}
	return location, nil
}

func (s *locationService) DeleteLocation(ctx context.Context, id string) (int64, error) {
	// An empty id would turn the workout filter into "everything".
	if id == "" {
		return 0, validationError("id is required")
	}

	var removed int64
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		n, err := s.workoutRepo.DeleteMany(ctx, domain.WorkoutFilter{LocationID: id})
		if err != nil {
			return err
		}
		if _, err := s.locationRepo.DeleteByID(ctx, id); err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, locationNotFound(id)
		}
		return 0, storeError("delete location", err)
	}
	slog.Info("location deleted", "id", id, "workouts_removed", removed)
	return removed, nil
}

// checkNameFree fails with a duplicate error if a location other than
// exceptID already uses name. The unique index still backs this up against
// concurrent writers.
func (s *locationService) checkNameFree(ctx context.Context, name, exceptID string) error {
	existing, err := s.locationRepo.FindByName(ctx, name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return storeError("find location by name", err)
	case existing.ID != exceptID:
		return duplicateName(name)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return validationError("name is required")
	}
	return nil
}

func validateMapLink(link string) error {
	if link == "" {
		return validationError("mapLink is required")
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validationError("mapLink must be an http(s) URL")
	}
	return nil
}

func locationNotFound(id string) error {
	return fmt.Errorf("location %q: %w", id, ErrNotFound)
}

func duplicateName(name string) error {
	return &duplicateError{name: name}
}

type duplicateError struct{ name string }

func (e *duplicateError) Error() string {
	return "a location named \"" + e.name + "\" already exists"
}

func (e *duplicateError) Unwrap() error { return ErrDuplicate }
