package notifier

// bookingCreatedEvent тело уведомления о созданном бронировании
type bookingCreatedEvent struct {
	BookingID       int64  `json:"bookingId"`
	ClientName      string `json:"clientName"`
	ClientEmail     string `json:"clientEmail,omitempty"`
	ClientPhone     string `json:"clientPhone,omitempty"`
	ServiceName     string `json:"serviceName"`
	StartAt         string `json:"startAt"`
	EndAt           string `json:"endAt"`
	CancellationURL string `json:"cancellationUrl,omitempty"`
}

// bookingCancelledEvent тело уведомления об отмене бронирования
type bookingCancelledEvent struct {
	BookingID   int64  `json:"bookingId"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail,omitempty"`
	ClientPhone string `json:"clientPhone,omitempty"`
	ServiceName string `json:"serviceName"`
	StartAt     string `json:"startAt"`
}
