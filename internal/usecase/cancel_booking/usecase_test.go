package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobook/booking-service/internal/domain"
	bookingRepo "github.com/studiobook/booking-service/internal/infra/storage/booking"
	tokenRepo "github.com/studiobook/booking-service/internal/infra/storage/token"
	"github.com/studiobook/booking-service/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*domain.CancellationToken
}

func (f *fakeTokenRepo) GetByToken(ctx context.Context, value string) (*domain.CancellationToken, error) {
	t, ok := f.tokens[value]
	if !ok {
		return nil, tokenRepo.ErrTokenNotFound
	}
	return t, nil
}

func (f *fakeTokenRepo) MarkUsed(ctx context.Context, id int64, now time.Time) error {
	for _, t := range f.tokens {
		if t.ID == id {
			if t.UsedAt != nil {
				return tokenRepo.ErrTokenAlreadyUsed
			}
			used := now
			t.UsedAt = &used
			return nil
		}
	}
	return tokenRepo.ErrTokenNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	cancelled int
}

func (f *fakeNotifier) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking) {
	f.cancelled++
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	tokenRepo   *fakeTokenRepo
	notifier    *fakeNotifier
	now         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	f := &fixture{
		bookingRepo: &fakeBookingRepo{bookings: map[int64]*domain.Booking{
			1: {
				ID:          1,
				ServiceName: "Стрижка",
				StartAt:     now.Add(48 * time.Hour),
				EndAt:       now.Add(49 * time.Hour),
				Status:      domain.StatusConfirmed,
			},
		}},
		tokenRepo: &fakeTokenRepo{tokens: map[string]*domain.CancellationToken{
			"valid-token": {
				ID:        10,
				BookingID: 1,
				Token:     "valid-token",
				ExpiresAt: now.Add(24 * time.Hour),
			},
			"expired-token": {
				ID:        11,
				BookingID: 1,
				Token:     "expired-token",
				ExpiresAt: now.Add(-time.Hour),
			},
		}},
		notifier: &fakeNotifier{},
		now:      now,
	}

	f.uc = NewUseCase(
		f.bookingRepo,
		f.tokenRepo,
		fakeTxManager{},
		f.notifier,
		&fixedTimeProvider{now: now},
		nopLogger{},
	)

	return f
}

func TestCancelByToken_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CancelByToken(context.Background(), &CancelByTokenRequest{Token: "valid-token"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.False(t, resp.AlreadyCancelled)

	assert.Equal(t, domain.StatusCancelled, f.bookingRepo.bookings[1].Status)
	assert.NotNil(t, f.tokenRepo.tokens["valid-token"].UsedAt)
	assert.Equal(t, 1, f.notifier.cancelled)
}

func TestCancelByToken_SecondUseReturnsGone(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CancelByToken(context.Background(), &CancelByTokenRequest{Token: "valid-token"})
	require.NoError(t, err)

	// Токен одноразовый: повторное использование отклоняется
	_, err = f.uc.CancelByToken(context.Background(), &CancelByTokenRequest{Token: "valid-token"})
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
}

func TestCancelByToken_ExpiredToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CancelByToken(context.Background(), &CancelByTokenRequest{Token: "expired-token"})
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)

	assert.Equal(t, domain.StatusConfirmed, f.bookingRepo.bookings[1].Status)
}

func TestCancelByToken_UnknownToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CancelByToken(context.Background(), &CancelByTokenRequest{Token: "nope"})
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
}

func TestCancelByToken_CustomReason(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CancelByToken(context.Background(), &CancelByTokenRequest{
		Token:  "valid-token",
		Reason: ptr.Ptr("планы изменились"),
	})
	require.NoError(t, err)

	require.NotNil(t, f.bookingRepo.bookings[1].CancellationReason)
	assert.Equal(t, "планы изменились", *f.bookingRepo.bookings[1].CancellationReason)
}

func TestCancelByID_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CancelByID(context.Background(), &CancelByIDRequest{BookingID: 1})
	require.NoError(t, err)

	assert.False(t, resp.AlreadyCancelled)
	assert.Equal(t, domain.StatusCancelled, f.bookingRepo.bookings[1].Status)
	assert.Equal(t, 1, f.notifier.cancelled)
}

func TestCancelByID_Idempotent(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CancelByID(context.Background(), &CancelByIDRequest{BookingID: 1})
	require.NoError(t, err)

	// Повторная отмена успешна и не шлет второе уведомление
	resp, err := f.uc.CancelByID(context.Background(), &CancelByIDRequest{BookingID: 1})
	require.NoError(t, err)
	assert.True(t, resp.AlreadyCancelled)
	assert.Equal(t, 1, f.notifier.cancelled)
}

func TestCancelByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CancelByID(context.Background(), &CancelByIDRequest{BookingID: 99})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelByID_CompletedNotCancellable(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.bookings[1].Status = domain.StatusCompleted

	_, err := f.uc.CancelByID(context.Background(), &CancelByIDRequest{BookingID: 1})
	assert.ErrorIs(t, err, ErrBookingNotCancellable)
}

func TestCancelByToken_InvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CancelByToken(context.Background(), &CancelByTokenRequest{Token: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.CancelByID(context.Background(), &CancelByIDRequest{BookingID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
