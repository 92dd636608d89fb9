// Package schedule orders workouts for display and splits them into the
// ones meeting tomorrow and the rest. Everything here is pure.
package schedule

import (
	"slices"
	"time"

	"f3region/site-api/internal/domain"
)

// Key is the ordering score of a workout: day rank scaled by 100 plus slot
// rank. There are far fewer than 100 slots, so a slot can never overturn a
// difference in day. Unknown day or slot contributes -1.
func Key(w domain.Workout) int {
	return w.DayOfWeek().Rank()*100 + w.Slot().Rank()
}

// Compare orders a before b when its day comes first, then its time slot.
func Compare(a, b domain.Workout) int {
	return Key(a) - Key(b)
}

// Sort returns a copy of workouts in display order. Equal keys keep their
// input order.
func Sort(workouts []domain.Workout) []domain.Workout {
	out := slices.Clone(workouts)
	if out == nil {
		out = []domain.Workout{}
	}
	slices.SortStableFunc(out, Compare)
	return out
}

// tomorrow maps today's weekday to the day symbols that meet the next day.
var tomorrow = map[time.Weekday][]domain.Day{
	time.Sunday:    {domain.DayMonday},
	time.Monday:    {domain.DayTuesday},
	time.Tuesday:   {domain.DayWednesday},
	time.Wednesday: {domain.DayThursday},
	time.Thursday:  {domain.DayFriday, domain.DayEveryThirdFriday},
	time.Friday:    {domain.DaySaturday, domain.DayAllSaturdaysExceptLast},
	time.Saturday:  {domain.DaySunday},
}

// DaysAfter returns the day symbols that fall on the weekday after today.
// The monthly recurrences are included unconditionally.
func DaysAfter(today time.Weekday) []domain.Day {
	return slices.Clone(tomorrow[today])
}

// OccursTomorrow returns, in display order, the workouts whose day falls on
// the weekday after today. "Every Third Friday" and "All Saturdays Except the
// Last of the Month" always count as their weekday here; use OccursOn for a
// calendar-exact answer.
func OccursTomorrow(workouts []domain.Workout, today time.Weekday) []domain.Workout {
	tomorrowIs, _ := partition(workouts, meetsOn(DaysAfter(today)))
	return tomorrowIs
}

// OccursOtherDay returns, in display order, every workout OccursTomorrow
// leaves out.
func OccursOtherDay(workouts []domain.Workout, today time.Weekday) []domain.Workout {
	_, other := partition(workouts, meetsOn(DaysAfter(today)))
	return other
}

// OccursOn splits workouts into those that actually meet on date and the
// rest, both in display order. Unlike OccursTomorrow it honours the monthly
// rules of the irregular recurrences.
func OccursOn(workouts []domain.Workout, date time.Time) (on, other []domain.Workout) {
	return partition(workouts, func(w domain.Workout) bool {
		return w.DayOfWeek().OccursOn(date)
	})
}

func meetsOn(days []domain.Day) func(domain.Workout) bool {
	return func(w domain.Workout) bool {
		return slices.Contains(days, w.DayOfWeek())
	}
}

func partition(workouts []domain.Workout, keep func(domain.Workout) bool) (in, out []domain.Workout) {
	in, out = []domain.Workout{}, []domain.Workout{}
	for _, w := range Sort(workouts) {
		if keep(w) {
			in = append(in, w)
		} else {
			out = append(out, w)
		}
	}
	return in, out
}
