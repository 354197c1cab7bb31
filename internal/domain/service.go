package domain

import "time"

// ServiceItem represents a bookable service offered by the business
type ServiceItem struct {
	ID              int64
	Name            string
	DurationMinutes int // default appointment length
	Price           float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
