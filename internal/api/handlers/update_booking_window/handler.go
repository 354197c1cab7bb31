package update_booking_window

import (
	"net/http"
	"time"

	"github.com/studiobook/booking-service/internal/api/handlers"
	"github.com/studiobook/booking-service/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDaysOrDateRequired = "требуется maxDays или lastBookableDate"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
)

// UpdateBookingWindowRequest запрос на изменение окна бронирования.
// Указывается либо maxDays, либо lastBookableDate
type UpdateBookingWindowRequest struct {
	MaxDays          *int    `json:"maxDays,omitempty"`
	LastBookableDate *string `json:"lastBookableDate,omitempty"`
}

// BookingWindowResponse применённое окно бронирования. Значения могут
// отличаться от запрошенных из-за ограничения диапазона
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

// Handle PUT /api/v1/admin/booking-window
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateBookingWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/booking-window - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if (req.MaxDays == nil) == (req.LastBookableDate == nil) {
		h.logger.Warn("PUT /admin/booking-window - Exactly one of maxDays or lastBookableDate required")
		handlers.RespondBadRequest(w, msgDaysOrDateRequired)
		return
	}

	var effectiveDays int
	var err error

	if req.MaxDays != nil {
		effectiveDays, err = h.service.SetMaxDays(r.Context(), *req.MaxDays)
	} else {
		var date time.Time
		date, err = time.Parse(domain.DateFormat, *req.LastBookableDate)
		if err != nil {
			h.logger.Warn("PUT /admin/booking-window - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		effectiveDays, err = h.service.SetLastBookableDate(r.Context(), date)
	}

	if err != nil {
		h.logger.Error("PUT /admin/booking-window - Failed to update window: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	lastDate, err := h.service.LastBookableDate(r.Context())
	if err != nil {
		h.logger.Error("PUT /admin/booking-window - Failed to resolve last bookable date: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/booking-window - Updated: maxDays=%d", effectiveDays)
	handlers.RespondJSON(w, http.StatusOK, &BookingWindowResponse{
		MaxDays:          effectiveDays,
		LastBookableDate: lastDate.Format(domain.DateFormat),
	})
}
