package domain

import (
	"time"

	"github.com/studiobook/booking-service/pkg/types"
)

// BusinessHours represents the recurring opening hours for one day of week.
// Times are wall-clock values interpreted in the business timezone
type BusinessHours struct {
	DayOfWeek int // 0 = Sunday ... 6 = Saturday
	IsClosed  bool
	OpenTime  *types.TimeString // nil when IsClosed
	CloseTime *types.TimeString // nil when IsClosed
}

// BusinessBreak represents the recurring daily break for one day of week,
// subtracted from the open hours when enabled
type BusinessBreak struct {
	DayOfWeek  int
	Enabled    bool
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// Closure represents an inclusive calendar-date range during which the
// business is fully closed
type Closure struct {
	ID        int64
	StartDate time.Time // calendar date, time part ignored
	EndDate   time.Time
	Reason    string
}

// Contains reports whether the given calendar date falls inside the closure.
// Only year/month/day are compared; both boundaries are inclusive
func (c *Closure) Contains(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(c.StartDate)) && !d.After(truncateToDate(c.EndDate))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
