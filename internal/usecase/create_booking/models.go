package create_booking

import (
	"time"

	"github.com/studiobook/booking-service/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	ServiceID   int64
	StartAt     time.Time
	Notes       *string
}

// Response модель ответа на создание бронирования
type Response struct {
	BookingID         int64     `json:"bookingId"`
	ServiceID         int64     `json:"serviceId"`
	ServiceName       string    `json:"serviceName"`
	ServicePrice      float64   `json:"servicePrice"`
	StartAt           time.Time `json:"startAt"`
	EndAt             time.Time `json:"endAt"`
	Status            string    `json:"status"`
	CancellationToken string    `json:"cancellationToken"`
	CancellationURL   string    `json:"cancellationUrl,omitempty"`
}

// fromDomain собирает ответ из созданного бронирования и токена отмены
func fromDomain(b *domain.Booking, token *domain.CancellationToken, cancellationURL string) *Response {
	return &Response{
		BookingID:         b.ID,
		ServiceID:         b.ServiceID,
		ServiceName:       b.ServiceName,
		ServicePrice:      b.ServicePrice,
		StartAt:           b.StartAt,
		EndAt:             b.EndAt,
		Status:            string(b.Status),
		CancellationToken: token.Token,
		CancellationURL:   cancellationURL,
	}
}
