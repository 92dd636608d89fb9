// internal/domain/workout.go
package domain

// Workout is a recurring session held at one Location.
type Workout struct {
	ID            string `json:"_id"`
	LocationID    string `json:"locationId"`              // Owning Location
	Style         string `json:"style"`                   // e.g. "Bootcamp", "Ruck"
	Day           string `json:"day"`                     // One of the Day vocabulary, stored as text
	Time          string `json:"time"`                    // One of the TimeSlot vocabulary, stored as text
	Q             string `json:"q,omitempty"`             // Leader for the session, if fixed
	AvgAttendance string `json:"avgAttendance,omitempty"` // Kept as entered
}

// DayOfWeek resolves the stored day text against the vocabulary.
func (w Workout) DayOfWeek() Day {
	return ParseDay(w.Day)
}

// Slot resolves the stored time text against the vocabulary.
func (w Workout) Slot() TimeSlot {
	return ParseTimeSlot(w.Time)
}

// WorkoutFilter selects workouts for bulk reads and deletes.
// The zero value matches every workout.
type WorkoutFilter struct {
	LocationID string
}

// WorkoutUpdate carries the fields to change on a single workout.
// Nil fields are left untouched.
type WorkoutUpdate struct {
	LocationID    *string
	Style         *string
	Day           *string
	Time          *string
	Q             *string
	AvgAttendance *string
}

// Apply copies the set fields onto w.
func (u WorkoutUpdate) Apply(w *Workout) {
	setString(&w.LocationID, u.LocationID)
	setString(&w.Style, u.Style)
	setString(&w.Day, u.Day)
	setString(&w.Time, u.Time)
	setString(&w.Q, u.Q)
	setString(&w.AvgAttendance, u.AvgAttendance)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
