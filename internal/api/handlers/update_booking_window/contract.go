package update_booking_window

import (
	"context"
	"time"
)

type WindowService interface {
	SetMaxDays(ctx context.Context, days int) (int, error)
	SetLastBookableDate(ctx context.Context, date time.Time) (int, error)
	LastBookableDate(ctx context.Context) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
