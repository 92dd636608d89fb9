package service

import (
	"context"
	"testing"
	"time"

	"f3region/site-api/internal/domain"
	"f3region/site-api/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workoutFixture struct {
	store     *memory.Store
	locations LocationService
	workouts  WorkoutService
}

func newWorkoutFixture() *workoutFixture {
	store := memory.NewStore()
	return &workoutFixture{
		store:     store,
		locations: NewLocationService(store.Locations(), store.Workouts(), store),
		workouts:  NewWorkoutService(store.Workouts(), store.Locations(), store),
	}
}

func (f *workoutFixture) location(t *testing.T, name string) string {
	t.Helper()
	loc, err := f.locations.CreateLocation(context.Background(), domain.Location{
		Name: name, MapLink: "https://maps.example.com/" + name,
	})
	require.NoError(t, err)
	return loc.ID
}

func TestReplaceAllWorkouts(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture()
	a, b := f.location(t, "A"), f.location(t, "B")

	_, err := f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{{LocationID: a}, {LocationID: a}, {LocationID: b}})
	require.NoError(t, err)

	stored, err := f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{{ID: "keep", LocationID: b, Day: "Monday"}})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "keep", stored[0].ID)

	all, err := f.workouts.ListWorkouts(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, all)
}

func TestReplaceAllWorkoutsRejectsMissingLocation(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture()
	a, b := f.location(t, "A"), f.location(t, "B")

	_, err := f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{{LocationID: a}})
	require.NoError(t, err)

	_, err = f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{{LocationID: b}, {LocationID: " "}})
	assert.ErrorIs(t, err, ErrValidationFailed)

	all, _ := f.workouts.ListWorkouts(ctx)
	require.Len(t, all, 1, "a rejected batch leaves the old set in place")
	assert.Equal(t, a, all[0].LocationID)
}

func TestReplaceAllWorkoutsRejectsUnknownLocation(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture()
	a := f.location(t, "A")

	_, err := f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{{LocationID: a}})
	require.NoError(t, err)

	_, err = f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{{LocationID: a}, {LocationID: "gone"}})
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), `"gone"`)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)

	all, _ := f.workouts.ListWorkouts(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, a, all[0].LocationID)
}

func TestReplaceAllWorkoutsRejectsRepeatedIDs(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture()
	a := f.location(t, "A")

	_, err := f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{{LocationID: a, Day: "Monday"}})
	require.NoError(t, err)

	_, err = f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{{ID: "x", LocationID: a}, {ID: "x", LocationID: a}})
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
	assert.Contains(t, err.Error(), `"x"`)

	all, _ := f.workouts.ListWorkouts(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "Monday", all[0].Day)
}

func TestReplaceAllWorkoutsEmptyClearsSet(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture()
	a := f.location(t, "A")

	_, err := f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{{LocationID: a}})
	require.NoError(t, err)
	stored, err := f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{})
	require.NoError(t, err)
	assert.Empty(t, stored)

	all, _ := f.workouts.ListWorkouts(ctx)
	assert.Empty(t, all)
}

func TestScheduleFor(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture()
	yard := f.location(t, "The Yard")

	_, err := f.workouts.ReplaceAllWorkouts(ctx, []domain.Workout{
		{ID: "sat", LocationID: yard, Day: "Saturday", Time: "0600"},
		{ID: "fri", LocationID: yard, Day: "Friday", Time: "0530"},
		{ID: "third", LocationID: yard, Day: "Every Third Friday", Time: "0500"},
	})
	require.NoError(t, err)
	// Written straight to the store: an orphan left over from older data.
	_, err = f.store.Workouts().Create(ctx, &domain.Workout{ID: "orphan", LocationID: "gone", Day: "Friday", Time: "0500"})
	require.NoError(t, err)

	// 2024-03-21 is a Thursday; the next day is the third Friday.
	thursday := time.Date(2024, time.March, 21, 6, 0, 0, 0, time.UTC)
	sched, err := f.workouts.ScheduleFor(ctx, thursday, false)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-21", sched.Date)
	require.Len(t, sched.Tomorrow, 3)
	assert.Equal(t, "orphan", sched.Tomorrow[0].ID)
	assert.Equal(t, "", sched.Tomorrow[0].LocationName)
	assert.Equal(t, "fri", sched.Tomorrow[1].ID)
	assert.Equal(t, "The Yard", sched.Tomorrow[1].LocationName)
	assert.Equal(t, "third", sched.Tomorrow[2].ID)
	require.Len(t, sched.Other, 1)
	assert.Equal(t, "sat", sched.Other[0].ID)

	// A week later the next day is the fifth Friday.
	sched, err = f.workouts.ScheduleFor(ctx, thursday.AddDate(0, 0, 7), true)
	require.NoError(t, err)
	require.Len(t, sched.Tomorrow, 2)
	assert.Equal(t, "orphan", sched.Tomorrow[0].ID)
	assert.Equal(t, "fri", sched.Tomorrow[1].ID)
	assert.Len(t, sched.Other, 2)
}
