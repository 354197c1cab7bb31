// Package handlers содержит общие помощники HTTP-слоя: декодирование
// запросов и формирование JSON-ответов со структурированными ошибками
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Машиночитаемые коды ошибок API
const (
	CodeValidationFailed      = "validation_failed"
	CodeServiceNotFound       = "service_not_found"
	CodeBookingNotFound       = "booking_not_found"
	CodeSlotConflict          = "slot_conflict"
	CodeHorizonExceeded       = "horizon_exceeded"
	CodeTokenInvalidOrExpired = "token_invalid_or_expired"
	CodeForbidden             = "forbidden"
	CodeInternalError         = "internal_error"
)

const maxBodyBytes = 1 << 20 // 1 MB

// ErrorBody тело структурированной ошибки
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse обертка ошибки API
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// DecodeJSON декодирует тело запроса в dst, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	// Второй Decode ловит мусор после JSON-объекта
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON body")
	}

	return nil
}

// RespondJSON пишет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет структурированную ошибку {"error": {"code", "message"}}
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// RespondBadRequest пишет 400 с кодом validation_failed
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidationFailed, message)
}

// RespondUnprocessable пишет 422 с указанным кодом
func RespondUnprocessable(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusUnprocessableEntity, code, message)
}

// RespondNotFound пишет 404 с указанным кодом
func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

// RespondForbidden пишет 403 с кодом forbidden
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, message)
}

// RespondInternalError пишет 500 с кодом internal_error без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, "внутренняя ошибка сервера")
}
