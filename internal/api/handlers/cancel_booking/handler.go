package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/studiobook/booking-service/internal/api/handlers"
	cancelBooking "github.com/studiobook/booking-service/internal/usecase/cancel_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgTokenOrBookingID      = "требуется token или bookingId"
	msgTokenInvalidOrExpired = "токен отмены недействителен или просрочен"
	msgBookingNotFound       = "бронирование не найдено"
	msgBookingNotCancellable = "бронирование не может быть отменено"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if (req.Token == nil) == (req.BookingID == nil) {
		h.logger.Warn("POST /bookings/cancel - Exactly one of token or bookingId required")
		handlers.RespondBadRequest(w, msgTokenOrBookingID)
		return
	}

	var result *cancelBooking.Response
	var err error

	if req.Token != nil {
		result, err = h.useCase.CancelByToken(r.Context(), &cancelBooking.CancelByTokenRequest{
			Token:  *req.Token,
			Reason: req.Reason,
		})
	} else {
		result, err = h.useCase.CancelByID(r.Context(), &cancelBooking.CancelByIDRequest{
			BookingID: *req.BookingID,
			Reason:    req.Reason,
		})
	}

	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrTokenInvalidOrExpired):
			h.logger.Warn("POST /bookings/cancel - Token invalid or expired")
			handlers.RespondError(w, http.StatusGone, handlers.CodeTokenInvalidOrExpired, msgTokenInvalidOrExpired)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/cancel - Booking not found")
			handlers.RespondNotFound(w, handlers.CodeBookingNotFound, msgBookingNotFound)

		case errors.Is(err, cancelBooking.ErrBookingNotCancellable):
			h.logger.Warn("POST /bookings/cancel - Booking not cancellable")
			handlers.RespondUnprocessable(w, handlers.CodeValidationFailed, msgBookingNotCancellable)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgTokenOrBookingID)

		default:
			h.logger.Error("POST /bookings/cancel - Failed to cancel booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/cancel - Booking cancelled: booking_id=%d, already_cancelled=%v",
		result.BookingID, result.AlreadyCancelled)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
