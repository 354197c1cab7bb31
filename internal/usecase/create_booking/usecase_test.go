package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobook/booking-service/internal/domain"
	servicecatalogRepo "github.com/studiobook/booking-service/internal/infra/storage/servicecatalog"
	tokenRepo "github.com/studiobook/booking-service/internal/infra/storage/token"
	"github.com/studiobook/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) GetActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.IsActive() && domain.IntervalsOverlap(b.StartAt, b.EndAt, from, to) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeTokenRepo struct {
	tokens []*domain.CancellationToken
	nextID int64
}

func (f *fakeTokenRepo) Create(ctx context.Context, token *domain.CancellationToken) (*domain.CancellationToken, error) {
	f.nextID++
	created := *token
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.tokens = append(f.tokens, &created)
	return &created, nil
}

func (f *fakeTokenRepo) GetActiveByBookingID(ctx context.Context, bookingID int64, now time.Time) (*domain.CancellationToken, error) {
	for _, t := range f.tokens {
		if t.BookingID == bookingID && t.IsUsable(now) {
			return t, nil
		}
	}
	return nil, tokenRepo.ErrTokenNotFound
}

type fakeServiceRepo struct {
	services map[int64]*domain.ServiceItem
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, servicecatalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeScheduleRepo struct {
	hours  map[int]domain.BusinessHours
	breaks map[int]domain.BusinessBreak
}

func (f *fakeScheduleRepo) GetBusinessHours(ctx context.Context) (map[int]domain.BusinessHours, error) {
	return f.hours, nil
}

func (f *fakeScheduleRepo) GetBusinessBreaks(ctx context.Context) (map[int]domain.BusinessBreak, error) {
	return f.breaks, nil
}

func (f *fakeScheduleRepo) GetClosuresBetween(ctx context.Context, from, to time.Time) ([]domain.Closure, error) {
	return nil, nil
}

type fakeWindowPolicy struct {
	within bool
}

func (f *fakeWindowPolicy) IsWithinWindow(ctx context.Context, start time.Time) (bool, error) {
	return f.within, nil
}

// fakeTxManager выполняет fn без транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// failingTxManager возвращает ошибку транзакции вместо выполнения fn
type failingTxManager struct {
	err error
}

func (f *failingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return f.err
}

type fakeNotifier struct {
	created int
}

func (f *fakeNotifier) NotifyBookingCreated(ctx context.Context, booking *domain.Booking, cancellationURL string) {
	f.created++
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

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

type fixture struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	tokenRepo   *fakeTokenRepo
	txManager   *fakeTxManager
	notifier    *fakeNotifier
	loc         *time.Location
	now         time.Time
}

// newFixture собирает usecase: пн-пт 09:00-18:00 без перерывов,
// услуга на 60 минут, сейчас вторник 1 сентября 10:00
func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	hours := make(map[int]domain.BusinessHours)
	for d := 1; d <= 5; d++ {
		hours[d] = domain.BusinessHours{DayOfWeek: d, OpenTime: ts("09:00"), CloseTime: ts("18:00")}
	}

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, loc)

	f := &fixture{
		bookingRepo: &fakeBookingRepo{},
		tokenRepo:   &fakeTokenRepo{},
		txManager:   &fakeTxManager{},
		notifier:    &fakeNotifier{},
		loc:         loc,
		now:         now,
	}

	f.uc = NewUseCase(
		f.bookingRepo,
		f.tokenRepo,
		&fakeServiceRepo{services: map[int64]*domain.ServiceItem{
			1: {ID: 1, Name: "Стрижка", DurationMinutes: 60, Price: 1500, Active: true},
		}},
		&fakeScheduleRepo{hours: hours},
		&fakeWindowPolicy{within: true},
		f.txManager,
		f.notifier,
		&fixedTimeProvider{now: now},
		loc,
		Config{
			TokenTTL:            72 * time.Hour,
			CancellationBaseURL: "https://example.com/cancel",
		},
		nopLogger{},
	)

	return f
}

func validRequest(f *fixture) *Request {
	return &Request{
		ClientName:  "Иван Петров",
		ClientEmail: "ivan@example.com",
		ServiceID:   1,
		StartAt:     time.Date(2026, 9, 2, 14, 0, 0, 0, f.loc), // среда
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest(f))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, time.Date(2026, 9, 2, 15, 0, 0, 0, f.loc), resp.EndAt)
	assert.NotEmpty(t, resp.CancellationToken)
	assert.Contains(t, resp.CancellationURL, resp.CancellationToken)

	assert.Equal(t, 1, f.txManager.calls)
	assert.Equal(t, 1, f.notifier.created)

	require.Len(t, f.tokenRepo.tokens, 1)
	token := f.tokenRepo.tokens[0]
	assert.Equal(t, resp.BookingID, token.BookingID)
	assert.Equal(t, f.now.Add(72*time.Hour), token.ExpiresAt)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest(f))
	require.NoError(t, err)

	// Пересекающийся интервал: 14:30 при занятом 14:00-15:00
	req := validRequest(f)
	req.StartAt = time.Date(2026, 9, 2, 14, 30, 0, 0, f.loc)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)

	require.Len(t, f.bookingRepo.bookings, 1)
}

func TestExecute_SerializationFailureMapsToConflict(t *testing.T) {
	// Проигравшая из двух конкурентных транзакций получает SQLSTATE 40001
	// на statement или COMMIT. После исчерпания повторов клиент должен
	// увидеть конфликт слота, а не внутреннюю ошибку
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "ошибка на statement, обёрнутая репозиторием",
			err: fmt.Errorf("txmanager: transaction error: serializable retries exhausted: %w",
				fmt.Errorf("storage.booking: failed to execute query: GetActiveBetween - execute query: %w",
					&pq.Error{Code: "40001"})),
		},
		{
			name: "ошибка на COMMIT",
			err: fmt.Errorf("txmanager: transaction error: commit: %w",
				&pq.Error{Code: "40001"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.uc.txManager = &failingTxManager{err: tt.err}

			_, err := f.uc.Execute(context.Background(), validRequest(f))
			assert.ErrorIs(t, err, ErrSlotConflict)
			assert.Equal(t, 0, f.notifier.created)
		})
	}
}

func TestExecute_TouchingIntervalsDoNotConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest(f))
	require.NoError(t, err)

	// Стык в 15:00: интервалы полуоткрытые, конфликта нет
	req := validRequest(f)
	req.StartAt = time.Date(2026, 9, 2, 15, 0, 0, 0, f.loc)
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.BookingID)

	// Стык в 13:00 перед существующим бронированием
	req = validRequest(f)
	req.StartAt = time.Date(2026, 9, 2, 13, 0, 0, 0, f.loc)
	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest(f))
	require.NoError(t, err)

	f.bookingRepo.bookings[0].Status = domain.StatusCancelled
	_ = resp

	again, err := f.uc.Execute(context.Background(), validRequest(f))
	require.NoError(t, err)
	assert.Equal(t, int64(2), again.BookingID)
}

func TestExecute_HorizonExceeded(t *testing.T) {
	f := newFixture(t)
	f.uc.windowPolicy = &fakeWindowPolicy{within: false}

	_, err := f.uc.Execute(context.Background(), validRequest(f))
	assert.ErrorIs(t, err, ErrHorizonExceeded)
}

func TestExecute_StartInPast(t *testing.T) {
	f := newFixture(t)

	req := validRequest(f)
	req.StartAt = f.now.Add(-time.Hour)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture(t)

	// Начало в 17:30: конец 18:30 выходит за окно
	req := validRequest(f)
	req.StartAt = time.Date(2026, 9, 2, 17, 30, 0, 0, f.loc)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Воскресенье закрыто
	req = validRequest(f)
	req.StartAt = time.Date(2026, 9, 6, 14, 0, 0, 0, f.loc)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(t)

	req := validRequest(f)
	req.ServiceID = 99
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_TokenReusedForSameBooking(t *testing.T) {
	f := newFixture(t)

	// Действующий токен для будущего бронирования переиспользуется
	existing := &domain.CancellationToken{
		BookingID: 1,
		Token:     "existing-token",
		ExpiresAt: f.now.Add(24 * time.Hour),
	}
	_, err := f.tokenRepo.Create(context.Background(), existing)
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), validRequest(f))
	require.NoError(t, err)

	assert.Equal(t, "existing-token", resp.CancellationToken)
	require.Len(t, f.tokenRepo.tokens, 1)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"пустое имя", func(r *Request) { r.ClientName = "  " }},
		{"нет контактов", func(r *Request) { r.ClientEmail = ""; r.ClientPhone = "" }},
		{"некорректный email", func(r *Request) { r.ClientEmail = "not-an-email" }},
		{"нулевой serviceId", func(r *Request) { r.ServiceID = 0 }},
		{"нулевое время", func(r *Request) { r.StartAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(f)
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
