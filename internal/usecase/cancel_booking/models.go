package cancel_booking

import (
	"time"

	"github.com/studiobook/booking-service/internal/domain"
)

// CancelByTokenRequest запрос на отмену по одноразовому токену
type CancelByTokenRequest struct {
	Token  string
	Reason *string
}

// CancelByIDRequest запрос на отмену по ID бронирования (административный)
type CancelByIDRequest struct {
	BookingID int64
	Reason    *string
}

// Response модель ответа на отмену бронирования
type Response struct {
	BookingID        int64     `json:"bookingId"`
	ServiceName      string    `json:"serviceName"`
	StartAt          time.Time `json:"startAt"`
	Status           string    `json:"status"`
	AlreadyCancelled bool      `json:"alreadyCancelled"`
}

// fromDomain собирает ответ из отмененного бронирования
func fromDomain(b *domain.Booking, alreadyCancelled bool) *Response {
	return &Response{
		BookingID:        b.ID,
		ServiceName:      b.ServiceName,
		StartAt:          b.StartAt,
		Status:           string(domain.StatusCancelled),
		AlreadyCancelled: alreadyCancelled,
	}
}
