package list_bookings

import (
	"fmt"
	"net/url"
	"time"

	"github.com/studiobook/booking-service/internal/domain"
	"github.com/studiobook/booking-service/internal/service/bookings/models"
)

// ParseQuery разбирает query string в запрос сервиса бронирований.
// Даты в формате YYYY-MM-DD, границы включительные по дням
func ParseQuery(values url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		IncludeInactive: values.Get("includeInactive") == "true",
	}

	if raw := values.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
		}
		req.From = &from
	}

	if raw := values.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
		}
		// Включительная граница: конец дня
		end := to.AddDate(0, 0, 1)
		req.To = &end
	}

	if raw := values.Get("status"); raw != "" {
		req.Status = &raw
	}

	return req, nil
}
