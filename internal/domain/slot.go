package domain

import "time"

// Slot represents a candidate bookable interval of fixed duration
type Slot struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the slot overlaps [start, end) (half-open test)
func (s Slot) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(s.Start, s.End, start, end)
}
