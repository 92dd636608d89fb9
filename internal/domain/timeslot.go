// internal/domain/timeslot.go
package domain

import "strings"

// TimeSlot is one of the fixed workout time windows, ranked by start time.
type TimeSlot int

const (
	SlotUnknown TimeSlot = iota - 1
	Slot0500
	Slot0515
	Slot0530
	Slot0545
	Slot0600
	Slot0700
)

var slotLabels = [...]string{
	Slot0500: "05:00 AM–5:45 AM",
	Slot0515: "05:15 AM–6:00 AM",
	Slot0530: "05:30 AM–6:15 AM",
	Slot0545: "05:45 AM–6:30 AM",
	Slot0600: "06:00 AM–7:00 AM",
	Slot0700: "07:00 AM–8:00 AM",
}

// compact start-time form, e.g. "0530"
var slotStarts = [...]string{
	Slot0500: "0500",
	Slot0515: "0515",
	Slot0530: "0530",
	Slot0545: "0545",
	Slot0600: "0600",
	Slot0700: "0700",
}

// TimeSlots returns the vocabulary in ascending start order.
func TimeSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, len(slotLabels))
	for i := range slotLabels {
		slots = append(slots, TimeSlot(i))
	}
	return slots
}

// ParseTimeSlot accepts either the display label or the compact HHMM start.
// A plain hyphen is accepted in place of the en dash in labels.
func ParseTimeSlot(s string) TimeSlot {
	s = strings.TrimSpace(s)
	norm := strings.ReplaceAll(s, "-", "–")
	for i := range slotLabels {
		if strings.EqualFold(slotLabels[i], norm) || slotStarts[i] == s {
			return TimeSlot(i)
		}
	}
	return SlotUnknown
}

// Rank is the position in the vocabulary, or -1 when unknown.
func (t TimeSlot) Rank() int {
	if t < 0 || int(t) >= len(slotLabels) {
		return -1
	}
	return int(t)
}

func (t TimeSlot) String() string {
	if t.Rank() < 0 {
		return "Unknown"
	}
	return slotLabels[t]
}
