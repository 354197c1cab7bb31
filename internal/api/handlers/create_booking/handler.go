package create_booking

import (
	"errors"
	"net/http"

	"github.com/studiobook/booking-service/internal/api/handlers"
	createBooking "github.com/studiobook/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartAt      = "некорректный формат времени начала, ожидается RFC 3339"
	msgServiceNotFound     = "услуга не найдена"
	msgSlotConflict        = "выбранный временной слот уже занят"
	msgHorizonExceeded     = "дата бронирования за пределами доступного окна"
	msgOutsideWorkingHours = "выбранное время вне рабочих часов"
	msgInvalidBookingInput = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: service_id=%d, start=%s", req.ServiceID, req.StartAt)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeSlotConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, handlers.CodeServiceNotFound, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrHorizonExceeded):
			h.logger.Warn("POST /bookings - Horizon exceeded: service_id=%d, start=%s", req.ServiceID, req.StartAt)
			handlers.RespondUnprocessable(w, handlers.CodeHorizonExceeded, msgHorizonExceeded)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: service_id=%d, start=%s", req.ServiceID, req.StartAt)
			handlers.RespondUnprocessable(w, handlers.CodeValidationFailed, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, service_id=%d",
		result.BookingID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
