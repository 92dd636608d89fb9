package repository

import (
	"context"

	"f3region/site-api/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Ids are opaque strings at this boundary. An id the backing store cannot
// parse is treated as one that does not exist (ErrNotFound).

// RegionRepository stores the singleton Region.
type RegionRepository interface {
	// FindOne returns the stored Region, or ErrNotFound when none exists.
	FindOne(ctx context.Context) (*domain.Region, error)
	Create(ctx context.Context, region *domain.Region) (string, error)
	UpdateByID(ctx context.Context, id string, update domain.RegionUpdate) (*domain.Region, error)
}

// LocationRepository stores workout sites. Create and UpdateByID return
// ErrDuplicate when the name is already taken.
type LocationRepository interface {
	FindAll(ctx context.Context) ([]domain.Location, error)
	FindByID(ctx context.Context, id string) (*domain.Location, error)
	FindByName(ctx context.Context, name string) (*domain.Location, error)
	Create(ctx context.Context, location *domain.Location) (string, error)
	UpdateByID(ctx context.Context, id string, update domain.LocationUpdate) (*domain.Location, error)
	DeleteByID(ctx context.Context, id string) (*domain.Location, error)
}

// WorkoutRepository stores workouts. Nothing here enforces that LocationID
// points at an existing Location.
type WorkoutRepository interface {
	FindAll(ctx context.Context) ([]domain.Workout, error)
	FindByID(ctx context.Context, id string) (*domain.Workout, error)
	Find(ctx context.Context, filter domain.WorkoutFilter) ([]domain.Workout, error)
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	// CreateMany keeps ids that are already set and assigns the rest.
	CreateMany(ctx context.Context, workouts []domain.Workout) ([]string, error)
	UpdateByID(ctx context.Context, id string, update domain.WorkoutUpdate) (*domain.Workout, error)
	DeleteByID(ctx context.Context, id string) (*domain.Workout, error)
	DeleteMany(ctx context.Context, filter domain.WorkoutFilter) (int64, error)
}

// Transactor runs fn so that every repository call made with the context it
// receives commits together, or not at all when fn returns an error.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
