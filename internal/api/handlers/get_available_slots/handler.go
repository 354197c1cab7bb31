package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/studiobook/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/studiobook/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID = "некорректный идентификатор услуги"
	msgInvalidQuery     = "некорректные параметры запроса"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /services/{serviceId}/available-slots - Invalid service id: %v", vars["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	query, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /services/%d/available-slots - Invalid query: %v", serviceID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	useCaseReq, err := query.ToUseCaseRequest(serviceID)
	if err != nil {
		h.logger.Warn("GET /services/%d/available-slots - Failed to parse request: %v", serviceID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/%d/available-slots - Service not found", serviceID)
			handlers.RespondNotFound(w, handlers.CodeServiceNotFound, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/%d/available-slots - Invalid input: %v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /services/%d/available-slots - Failed to generate slots: %v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/%d/available-slots - Generated slots for %d days", serviceID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
