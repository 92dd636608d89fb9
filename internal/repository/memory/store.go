// Package memory keeps every collection in process memory. It backs the
// test suites and the `memory` database driver for local runs.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/repository"

	"github.com/google/uuid"
)

// Store holds all three collections behind one lock. A transaction holds the
// write lock for its whole duration, so readers never see half of it.
type Store struct {
	mu        sync.RWMutex
	regions   []domain.Region
	locations []domain.Location
	workouts  []domain.Workout
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

func (s *Store) read(ctx context.Context, fn func()) {
	if !s.inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

type snapshot struct {
	regions   []domain.Region
	locations []domain.Location
	workouts  []domain.Workout
}

// WithTransaction implements repository.Transactor. Writes made through ctx
// are undone if fn fails. A nested call joins the outer transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		regions:   slices.Clone(s.regions),
		locations: slices.Clone(s.locations),
		workouts:  slices.Clone(s.workouts),
	}
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.regions, s.locations, s.workouts = snap.regions, snap.locations, snap.workouts
		return err
	}
	return nil
}

// Regions returns the region collection.
func (s *Store) Regions() repository.RegionRepository { return regionRepo{s} }

// Locations returns the location collection.
func (s *Store) Locations() repository.LocationRepository { return locationRepo{s} }

// Workouts returns the workout collection.
func (s *Store) Workouts() repository.WorkoutRepository { return workoutRepo{s} }

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ---- regions ----

type regionRepo struct{ s *Store }

func (r regionRepo) FindOne(ctx context.Context) (*domain.Region, error) {
	var out *domain.Region
	r.s.read(ctx, func() {
		if len(r.s.regions) > 0 {
			region := r.s.regions[0]
			out = &region
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r regionRepo) Create(ctx context.Context, region *domain.Region) (string, error) {
	err := r.s.write(ctx, func() error {
		region.ID = newID()
		r.s.regions = append(r.s.regions, *region)
		return nil
	})
	return region.ID, err
}

func (r regionRepo) UpdateByID(ctx context.Context, id string, update domain.RegionUpdate) (*domain.Region, error) {
	var out *domain.Region
	err := r.s.write(ctx, func() error {
		for i := range r.s.regions {
			if r.s.regions[i].ID == id {
				update.Apply(&r.s.regions[i])
				region := r.s.regions[i]
				out = &region
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

// ---- locations ----

type locationRepo struct{ s *Store }

func (r locationRepo) FindAll(ctx context.Context) ([]domain.Location, error) {
	var out []domain.Location
	r.s.read(ctx, func() {
		out = slices.Clone(r.s.locations)
	})
	slices.SortStableFunc(out, func(a, b domain.Location) int {
		return strings.Compare(a.Name, b.Name)
	})
	if out == nil {
		out = []domain.Location{}
	}
	return out, nil
}

func (r locationRepo) FindByID(ctx context.Context, id string) (*domain.Location, error) {
	return r.findOne(ctx, func(l domain.Location) bool { return l.ID == id })
}

func (r locationRepo) FindByName(ctx context.Context, name string) (*domain.Location, error) {
	return r.findOne(ctx, func(l domain.Location) bool { return l.Name == name })
}

func (r locationRepo) findOne(ctx context.Context, match func(domain.Location) bool) (*domain.Location, error) {
	var out *domain.Location
	r.s.read(ctx, func() {
		if i := slices.IndexFunc(r.s.locations, match); i >= 0 {
			location := r.s.locations[i]
			out = &location
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r locationRepo) nameTaken(name, exceptID string) bool {
	return slices.ContainsFunc(r.s.locations, func(l domain.Location) bool {
		return l.Name == name && l.ID != exceptID
	})
}

func (r locationRepo) Create(ctx context.Context, location *domain.Location) (string, error) {
	err := r.s.write(ctx, func() error {
		if r.nameTaken(location.Name, "") {
			return repository.ErrDuplicate
		}
		location.ID = newID()
		r.s.locations = append(r.s.locations, *location)
		return nil
	})
	if err != nil {
		return "", err
	}
	return location.ID, nil
}

func (r locationRepo) UpdateByID(ctx context.Context, id string, update domain.LocationUpdate) (*domain.Location, error) {
	var out *domain.Location
	err := r.s.write(ctx, func() error {
		i := slices.IndexFunc(r.s.locations, func(l domain.Location) bool { return l.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		if update.Name != nil && r.nameTaken(*update.Name, id) {
			return repository.ErrDuplicate
		}
		update.Apply(&r.s.locations[i])
		location := r.s.locations[i]
		out = &location
		return nil
	})
	return out, err
}

func (r locationRepo) DeleteByID(ctx context.Context, id string) (*domain.Location, error) {
	var out *domain.Location
	err := r.s.write(ctx, func() error {
		i := slices.IndexFunc(r.s.locations, func(l domain.Location) bool { return l.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		location := r.s.locations[i]
		out = &location
		r.s.locations = slices.Delete(slices.Clone(r.s.locations), i, i+1)
		return nil
	})
	return out, err
}

// ---- workouts ----

type workoutRepo struct{ s *Store }

func matches(f domain.WorkoutFilter, w domain.Workout) bool {
	return f.LocationID == "" || f.LocationID == w.LocationID
}

func (r workoutRepo) FindAll(ctx context.Context) ([]domain.Workout, error) {
	return r.Find(ctx, domain.WorkoutFilter{})
}

func (r workoutRepo) Find(ctx context.Context, filter domain.WorkoutFilter) ([]domain.Workout, error) {
	out := []domain.Workout{}
	r.s.read(ctx, func() {
		for _, w := range r.s.workouts {
			if matches(filter, w) {
				out = append(out, w)
			}
		}
	})
	return out, nil
}

func (r workoutRepo) FindByID(ctx context.Context, id string) (*domain.Workout, error) {
	var out *domain.Workout
	r.s.read(ctx, func() {
		if i := slices.IndexFunc(r.s.workouts, func(w domain.Workout) bool { return w.ID == id }); i >= 0 {
			workout := r.s.workouts[i]
			out = &workout
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r workoutRepo) idTaken(id string) bool {
	return slices.ContainsFunc(r.s.workouts, func(w domain.Workout) bool { return w.ID == id })
}

func (r workoutRepo) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	ids, err := r.CreateMany(ctx, []domain.Workout{*workout})
	if err != nil {
		return "", err
	}
	workout.ID = ids[0]
	return workout.ID, nil
}

func (r workoutRepo) CreateMany(ctx context.Context, workouts []domain.Workout) ([]string, error) {
	ids := make([]string, len(workouts))
	err := r.s.write(ctx, func() error {
		batch := make([]domain.Workout, len(workouts))
		seen := make(map[string]bool, len(workouts))
		for i, w := range workouts {
			if w.ID == "" {
				w.ID = newID()
			}
			if seen[w.ID] || r.idTaken(w.ID) {
				return repository.ErrDuplicate
			}
			seen[w.ID] = true
			batch[i] = w
			ids[i] = w.ID
		}
		r.s.workouts = append(slices.Clone(r.s.workouts), batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r workoutRepo) UpdateByID(ctx context.Context, id string, update domain.WorkoutUpdate) (*domain.Workout, error) {
	var out *domain.Workout
	err := r.s.write(ctx, func() error {
		i := slices.IndexFunc(r.s.workouts, func(w domain.Workout) bool { return w.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		update.Apply(&r.s.workouts[i])
		workout := r.s.workouts[i]
		out = &workout
		return nil
	})
	return out, err
}

func (r workoutRepo) DeleteByID(ctx context.Context, id string) (*domain.Workout, error) {
	var out *domain.Workout
	err := r.s.write(ctx, func() error {
		i := slices.IndexFunc(r.s.workouts, func(w domain.Workout) bool { return w.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		workout := r.s.workouts[i]
		out = &workout
		r.s.workouts = slices.Delete(slices.Clone(r.s.workouts), i, i+1)
		return nil
	})
	return out, err
}

func (r workoutRepo) DeleteMany(ctx context.Context, filter domain.WorkoutFilter) (int64, error) {
	var deleted int64
	err := r.s.write(ctx, func() error {
		kept := make([]domain.Workout, 0, len(r.s.workouts))
		for _, w := range r.s.workouts {
			if matches(filter, w) {
				deleted++
				continue
			}
			kept = append(kept, w)
		}
		r.s.workouts = kept
		return nil
	})
	return deleted, err
}
