package domain

import "time"

// CancellationToken is a one-time credential bound to a booking.
// Issued on booking creation, consumed exactly once by the cancellation flow
type CancellationToken struct {
	ID        int64
	BookingID int64
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// IsUsable returns true if the token can still be consumed
func (t *CancellationToken) IsUsable(now time.Time) bool {
	return t.UsedAt == nil && t.ExpiresAt.After(now)
}
