package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalsOverlap(t *testing.T) {
	base := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	at := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }

	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{"полное пересечение", at(0), at(60), at(30), at(90), true},
		{"вложенный интервал", at(0), at(60), at(15), at(45), true},
		{"касание концов не пересечение", at(0), at(60), at(60), at(120), false},
		{"касание в обратную сторону", at(60), at(120), at(0), at(60), false},
		{"раздельные интервалы", at(0), at(30), at(90), at(120), false},
		{"совпадающие интервалы", at(0), at(60), at(0), at(60), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestBookingStatusPredicates(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsActive())

	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusCompleted}).IsTerminal())
}

func TestCancellationTokenIsUsable(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	used := now.Add(-time.Hour)

	tests := []struct {
		name     string
		token    CancellationToken
		expected bool
	}{
		{"действующий", CancellationToken{ExpiresAt: now.Add(time.Hour)}, true},
		{"просроченный", CancellationToken{ExpiresAt: now.Add(-time.Minute)}, false},
		{"использованный", CancellationToken{ExpiresAt: now.Add(time.Hour), UsedAt: &used}, false},
		{"истекает ровно сейчас", CancellationToken{ExpiresAt: now}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.token.IsUsable(now))
		})
	}
}

func TestClamps(t *testing.T) {
	assert.Equal(t, 0, ClampBookingMaxDays(-10))
	assert.Equal(t, 90, ClampBookingMaxDays(365))
	assert.Equal(t, 30, ClampBookingMaxDays(30))

	assert.Equal(t, 5, ClampStepMinutes(1))
	assert.Equal(t, 120, ClampStepMinutes(600))

	assert.Equal(t, 1, ClampDaysRange(0))
	assert.Equal(t, 60, ClampDaysRange(365))
}
