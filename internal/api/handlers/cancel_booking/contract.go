package cancel_booking

import (
	"context"

	cancelBooking "github.com/studiobook/booking-service/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	CancelByToken(ctx context.Context, req *cancelBooking.CancelByTokenRequest) (*cancelBooking.Response, error)
	CancelByID(ctx context.Context, req *cancelBooking.CancelByIDRequest) (*cancelBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
