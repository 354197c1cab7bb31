package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents an appointment booking in the system
type Booking struct {
	ID          int64
	ClientName  string
	ClientEmail string
	ClientPhone string
	ServiceID   int64

	// Absolute instants; derived from the requested date, start time and
	// service duration in the business timezone
	StartAt time.Time
	EndAt   time.Time

	Status       BookingStatus
	ReminderSent bool

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its time interval
// (counts towards occupancy)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true if no further status transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// Overlaps reports whether the booking interval overlaps [start, end).
// The test is half-open: touching endpoints do not count as overlap
func (b *Booking) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(b.StartAt, b.EndAt, start, end)
}

// IntervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Strict inequalities: an interval ending exactly when another starts is free
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// BookingsFilter describes a filtered listing of bookings
type BookingsFilter struct {
	From            *time.Time     // period start (inclusive), nil = unbounded
	To              *time.Time     // period end (exclusive), nil = unbounded
	Status          *BookingStatus // optional status filter
	IncludeInactive bool           // include cancelled and completed bookings
}
