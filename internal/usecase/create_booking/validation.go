package create_booking

import (
	"fmt"
	"strings"

	"github.com/studiobook/booking-service/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(req.ClientName) > domain.MaxClientFieldLength {
		return fmt.Errorf("%w: clientName exceeds %d characters", ErrInvalidInput, domain.MaxClientFieldLength)
	}

	if strings.TrimSpace(req.ClientEmail) == "" && strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientEmail or clientPhone is required", ErrInvalidInput)
	}

	if req.ClientEmail != "" && !strings.Contains(req.ClientEmail, "@") {
		return fmt.Errorf("%w: clientEmail is malformed", ErrInvalidInput)
	}
	if len(req.ClientEmail) > domain.MaxClientFieldLength {
		return fmt.Errorf("%w: clientEmail exceeds %d characters", ErrInvalidInput, domain.MaxClientFieldLength)
	}
	if len(req.ClientPhone) > domain.MaxClientFieldLength {
		return fmt.Errorf("%w: clientPhone exceeds %d characters", ErrInvalidInput, domain.MaxClientFieldLength)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
