// internal/domain/day.go
package domain

import (
	"strings"
	"time"
)

// Day is a recurrence symbol from the fixed day vocabulary. Its position in
// the vocabulary is its rank; workouts are ordered by it.
type Day int

// The vocabulary, in display order. Keep DayUnknown below zero so that
// unrecognised values sort ahead of every known day.
const (
	DayUnknown Day = iota - 1
	DayMonday
	DayTuesday
	DayWednesday
	DayThursday
	DayFriday
	DayEveryThirdFriday
	DaySaturday
	DayAllSaturdaysExceptLast
	DaySunday
)

var dayNames = [...]string{
	DayMonday:                 "Monday",
	DayTuesday:                "Tuesday",
	DayWednesday:              "Wednesday",
	DayThursday:               "Thursday",
	DayFriday:                 "Friday",
	DayEveryThirdFriday:       "Every Third Friday",
	DaySaturday:               "Saturday",
	DayAllSaturdaysExceptLast: "All Saturdays Except the Last of the Month",
	DaySunday:                 "Sunday",
}

// Days returns the full vocabulary in rank order.
func Days() []Day {
	days := make([]Day, 0, len(dayNames))
	for i := range dayNames {
		days = append(days, Day(i))
	}
	return days
}

// ParseDay maps a stored day string onto the vocabulary. Matching ignores
// case and surrounding whitespace; anything else yields DayUnknown.
func ParseDay(s string) Day {
	s = strings.TrimSpace(s)
	for i, name := range dayNames {
		if strings.EqualFold(name, s) {
			return Day(i)
		}
	}
	return DayUnknown
}

// Rank is the position in the vocabulary, or -1 when unknown.
func (d Day) Rank() int {
	if d < 0 || int(d) >= len(dayNames) {
		return -1
	}
	return int(d)
}

func (d Day) String() string {
	if d.Rank() < 0 {
		return "Unknown"
	}
	return dayNames[d]
}

// Weekday is the calendar weekday the symbol nominally falls on.
func (d Day) Weekday() (time.Weekday, bool) {
	switch d {
	case DayMonday:
		return time.Monday, true
	case DayTuesday:
		return time.Tuesday, true
	case DayWednesday:
		return time.Wednesday, true
	case DayThursday:
		return time.Thursday, true
	case DayFriday, DayEveryThirdFriday:
		return time.Friday, true
	case DaySaturday, DayAllSaturdaysExceptLast:
		return time.Saturday, true
	case DaySunday:
		return time.Sunday, true
	}
	return 0, false
}

// OccursOn reports whether a workout on this day actually meets on date,
// taking the irregular monthly recurrences into account.
func (d Day) OccursOn(date time.Time) bool {
	wd, ok := d.Weekday()
	if !ok || date.Weekday() != wd {
		return false
	}
	switch d {
	case DayEveryThirdFriday:
		return date.Day() >= 15 && date.Day() <= 21
	case DayAllSaturdaysExceptLast:
		return date.AddDate(0, 0, 7).Month() == date.Month()
	}
	return true
}
