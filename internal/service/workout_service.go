package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/repository"
	"f3region/site-api/internal/schedule"
)

// ScheduleEntry is a workout joined with the name of its site.
type ScheduleEntry struct {
	domain.Workout
	LocationName string `json:"locationName"`
}

// Schedule is the workout finder view for one day: what meets tomorrow and
// everything else, both in display order.
type Schedule struct {
	Date     string          `json:"date"`
	Tomorrow []ScheduleEntry `json:"tomorrow"`
	Other    []ScheduleEntry `json:"other"`
}

// WorkoutService reads and bulk-writes workouts.
type WorkoutService interface {
	// ListWorkouts returns every workout in store order. Display ordering is
	// left to the caller.
	ListWorkouts(ctx context.Context) ([]domain.Workout, error)
	// ReplaceAllWorkouts swaps the whole workout set for workouts in one
	// transaction and returns what was stored. Every locationId must name an
	// existing Location and no _id may repeat.
	ReplaceAllWorkouts(ctx context.Context, workouts []domain.Workout) ([]domain.Workout, error)
	// ScheduleFor builds the finder view for today. With calendar set the
	// monthly recurrences are checked against tomorrow's actual date.
	ScheduleFor(ctx context.Context, today time.Time, calendar bool) (*Schedule, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	locationRepo repository.LocationRepository
	tx           repository.Transactor
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, locationRepo repository.LocationRepository, tx repository.Transactor) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		locationRepo: locationRepo,
		tx:           tx,
	}
}

func (s *workoutService) ListWorkouts(ctx context.Context) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.FindAll(ctx)
	if err != nil {
		return nil, storeError("list workouts", err)
	}
	return workouts, nil
}

func (s *workoutService) ReplaceAllWorkouts(ctx context.Context, workouts []domain.Workout) ([]domain.Workout, error) {
	workouts = slices.Clone(workouts)
	seen := make(map[string]int, len(workouts))
	for i := range workouts {
		workouts[i].LocationID = strings.TrimSpace(workouts[i].LocationID)
		if workouts[i].LocationID == "" {
			return nil, validationError("workout %d: locationId is required", i)
		}
		if id := workouts[i].ID; id != "" {
			if first, dup := seen[id]; dup {
				return nil, validationError("workout %d: duplicate _id %q (also workout %d)", i, id, first)
			}
			seen[id] = i
		}
	}

	var stored []domain.Workout
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// Checked inside the transaction so a location deleted meanwhile
		// cannot gain workouts.
		if err := s.checkLocationsExist(ctx, workouts); err != nil {
			return err
		}
		if _, err := s.workoutRepo.DeleteMany(ctx, domain.WorkoutFilter{}); err != nil {
			return err
		}
		ids, err := s.workoutRepo.CreateMany(ctx, workouts)
		if err != nil {
			return err
		}
		stored = make([]domain.Workout, len(workouts))
		for i, w := range workouts {
			w.ID = ids[i]
			stored[i] = w
		}
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrValidationFailed):
		return nil, err
	case errors.Is(err, repository.ErrDuplicate):
		return nil, fmt.Errorf("%w: workout ids must be unique", ErrDuplicate)
	default:
		return nil, storeError("replace workouts", err)
	}
	slog.Info("workouts replaced", "count", len(stored))
	return stored, nil
}

func (s *workoutService) checkLocationsExist(ctx context.Context, workouts []domain.Workout) error {
	if len(workouts) == 0 {
		return nil
	}
	locations, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(locations))
	for _, l := range locations {
		known[l.ID] = true
	}
	for i, w := range workouts {
		if !known[w.LocationID] {
			return validationError("workout %d: unknown locationId %q", i, w.LocationID)
		}
	}
	return nil
}

func (s *workoutService) ScheduleFor(ctx context.Context, today time.Time, calendar bool) (*Schedule, error) {
	workouts, err := s.workoutRepo.FindAll(ctx)
	if err != nil {
		return nil, storeError("list workouts", err)
	}
	locations, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		return nil, storeError("list locations", err)
	}
	names := make(map[string]string, len(locations))
	for _, l := range locations {
		names[l.ID] = l.Name
	}

	var tomorrow, other []domain.Workout
	if calendar {
		tomorrow, other = schedule.OccursOn(workouts, today.AddDate(0, 0, 1))
	} else {
		tomorrow = schedule.OccursTomorrow(workouts, today.Weekday())
		other = schedule.OccursOtherDay(workouts, today.Weekday())
	}

	return &Schedule{
		Date:     today.Format(time.DateOnly),
		Tomorrow: withLocationNames(tomorrow, names),
		Other:    withLocationNames(other, names),
	}, nil
}

func withLocationNames(workouts []domain.Workout, names map[string]string) []ScheduleEntry {
	entries := make([]ScheduleEntry, len(workouts))
	for i, w := range workouts {
		entries[i] = ScheduleEntry{Workout: w, LocationName: names[w.LocationID]}
	}
	return entries
}
