package domain

// Application settings keys
const (
	// SettingBookingMaxDays is the rolling booking horizon in days
	SettingBookingMaxDays = "booking_max_days"
)

// Default configuration values
const (
	DefaultBookingMaxDays = 14
	DefaultStepMinutes    = 30
	DefaultDaysRange      = 7
)

// Business validation bounds
const (
	MinBookingMaxDays = 0
	MaxBookingMaxDays = 90

	MinStepMinutes = 5
	MaxStepMinutes = 120

	MinDaysRange = 1
	MaxDaysRange = 60

	MinBufferMinutes = 0
	MaxBufferMinutes = 240

	MinDurationMinutes = 5
	MaxDurationMinutes = 480

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxClientFieldLength        = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses are the statuses that occupy time on the calendar
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses are the statuses excluded from occupancy
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}

// ClampBookingMaxDays clamps the booking horizon to its allowed range
func ClampBookingMaxDays(days int) int {
	if days < MinBookingMaxDays {
		return MinBookingMaxDays
	}
	if days > MaxBookingMaxDays {
		return MaxBookingMaxDays
	}
	return days
}

// ClampStepMinutes clamps the slot step granularity to its allowed range
func ClampStepMinutes(step int) int {
	if step < MinStepMinutes {
		return MinStepMinutes
	}
	if step > MaxStepMinutes {
		return MaxStepMinutes
	}
	return step
}

// ClampDaysRange clamps the requested number of days to its allowed range
func ClampDaysRange(days int) int {
	if days < MinDaysRange {
		return MinDaysRange
	}
	if days > MaxDaysRange {
		return MaxDaysRange
	}
	return days
}
