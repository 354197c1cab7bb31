package get_booking_window

import (
	"net/http"

	"github.com/studiobook/booking-service/internal/api/handlers"
	"github.com/studiobook/booking-service/internal/domain"
)

// BookingWindowResponse текущее окно бронирования
type BookingWindowResponse struct {
	MaxDays          int    `json:"maxDays"`
	LastBookableDate string `json:"lastBookableDate"`
}

type Handler struct {
	service WindowService
	logger  Logger
}

func NewHandler(service WindowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/booking-window
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	maxDays, err := h.service.MaxDays(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/booking-window - Failed to fetch max days: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	lastDate, err := h.service.LastBookableDate(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/booking-window - Failed to resolve last bookable date: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/booking-window - maxDays=%d", maxDays)
	handlers.RespondJSON(w, http.StatusOK, &BookingWindowResponse{
		MaxDays:          maxDays,
		LastBookableDate: lastDate.Format(domain.DateFormat),
	})
}
