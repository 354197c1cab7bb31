package create_booking

import (
	"time"

	createBooking "github.com/studiobook/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail,omitempty"`
	ClientPhone string  `json:"clientPhone,omitempty"`
	ServiceID   int64   `json:"serviceId"`
	StartAt     string  `json:"startAt"` // RFC 3339, например "2026-09-15T10:00:00+03:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingCreatedResponse HTTP response model
type BookingCreatedResponse struct {
	BookingID         int64   `json:"bookingId"`
	ServiceID         int64   `json:"serviceId"`
	ServiceName       string  `json:"serviceName"`
	ServicePrice      float64 `json:"servicePrice"`
	StartAt           string  `json:"startAt"`
	EndAt             string  `json:"endAt"`
	Status            string  `json:"status"`
	CancellationToken string  `json:"cancellationToken"`
	CancellationURL   string  `json:"cancellationUrl,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		ServiceID:   r.ServiceID,
		StartAt:     startAt,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		BookingID:         resp.BookingID,
		ServiceID:         resp.ServiceID,
		ServiceName:       resp.ServiceName,
		ServicePrice:      resp.ServicePrice,
		StartAt:           resp.StartAt.Format(time.RFC3339),
		EndAt:             resp.EndAt.Format(time.RFC3339),
		Status:            resp.Status,
		CancellationToken: resp.CancellationToken,
		CancellationURL:   resp.CancellationURL,
	}
}
