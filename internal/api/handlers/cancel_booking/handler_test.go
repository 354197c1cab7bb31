package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobook/booking-service/internal/api/handlers"
	cancelBooking "github.com/studiobook/booking-service/internal/usecase/cancel_booking"
)

type fakeUseCase struct {
	byTokenErr error
	byIDErr    error
	resp       *cancelBooking.Response
}

func (f *fakeUseCase) CancelByToken(ctx context.Context, req *cancelBooking.CancelByTokenRequest) (*cancelBooking.Response, error) {
	if f.byTokenErr != nil {
		return nil, f.byTokenErr
	}
	return f.resp, nil
}

func (f *fakeUseCase) CancelByID(ctx context.Context, req *cancelBooking.CancelByIDRequest) (*cancelBooking.Response, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/cancel", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHandle_SuccessByToken(t *testing.T) {
	uc := &fakeUseCase{resp: &cancelBooking.Response{
		BookingID:   1,
		ServiceName: "Стрижка",
		StartAt:     time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC),
		Status:      "cancelled",
	}}

	rec := doRequest(t, uc, `{"token": "some-token"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp BookingCancelledResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestHandle_TokenReuseReturns410(t *testing.T) {
	uc := &fakeUseCase{byTokenErr: cancelBooking.ErrTokenInvalidOrExpired}

	rec := doRequest(t, uc, `{"token": "used-token"}`)

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, handlers.CodeTokenInvalidOrExpired, errorCode(t, rec))
}

func TestHandle_BookingNotFoundReturns404(t *testing.T) {
	uc := &fakeUseCase{byIDErr: cancelBooking.ErrBookingNotFound}

	rec := doRequest(t, uc, `{"bookingId": 99}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, handlers.CodeBookingNotFound, errorCode(t, rec))
}

func TestHandle_BothTokenAndIDRejected(t *testing.T) {
	uc := &fakeUseCase{}

	rec := doRequest(t, uc, `{"token": "x", "bookingId": 1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handlers.CodeValidationFailed, errorCode(t, rec))
}

func TestHandle_NeitherTokenNorIDRejected(t *testing.T) {
	uc := &fakeUseCase{}

	rec := doRequest(t, uc, `{"reason": "передумал"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MalformedBody(t *testing.T) {
	uc := &fakeUseCase{}

	rec := doRequest(t, uc, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handlers.CodeValidationFailed, errorCode(t, rec))
}

func TestHandle_InternalErrorReturns500(t *testing.T) {
	uc := &fakeUseCase{byTokenErr: cancelBooking.ErrInternal}

	rec := doRequest(t, uc, `{"token": "x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, handlers.CodeInternalError, errorCode(t, rec))
}
