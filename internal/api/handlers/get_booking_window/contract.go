package get_booking_window

import (
	"context"
	"time"
)

type WindowService interface {
	MaxDays(ctx context.Context) (int, error)
	LastBookableDate(ctx context.Context) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
