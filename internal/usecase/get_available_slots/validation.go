package get_available_slots

import (
	"fmt"

	"github.com/studiobook/booking-service/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.DateFrom.IsZero() {
		return fmt.Errorf("%w: dateFrom is required", ErrInvalidInput)
	}

	if req.Days < 0 {
		return fmt.Errorf("%w: days must not be negative", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be in [%d, %d]",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.BufferMinutes != nil {
		if *req.BufferMinutes < domain.MinBufferMinutes || *req.BufferMinutes > domain.MaxBufferMinutes {
			return fmt.Errorf("%w: bufferMinutes must be in [%d, %d]",
				ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
		}
	}

	return nil
}
