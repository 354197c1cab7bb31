package cancel_booking

import (
	"time"

	cancelBooking "github.com/studiobook/booking-service/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model. Указывается либо token,
// либо bookingId
type CancelBookingRequest struct {
	Token     *string `json:"token,omitempty"`
	BookingID *int64  `json:"bookingId,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// BookingCancelledResponse HTTP response model
type BookingCancelledResponse struct {
	BookingID        int64  `json:"bookingId"`
	ServiceName      string `json:"serviceName"`
	StartAt          string `json:"startAt"`
	Status           string `json:"status"`
	AlreadyCancelled bool   `json:"alreadyCancelled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *BookingCancelledResponse {
	return &BookingCancelledResponse{
		BookingID:        resp.BookingID,
		ServiceName:      resp.ServiceName,
		StartAt:          resp.StartAt.Format(time.RFC3339),
		Status:           resp.Status,
		AlreadyCancelled: resp.AlreadyCancelled,
	}
}
