package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studiobook/booking-service/internal/calendar"
	"github.com/studiobook/booking-service/internal/domain"
	servicecatalogRepo "github.com/studiobook/booking-service/internal/infra/storage/servicecatalog"
	tokenRepo "github.com/studiobook/booking-service/internal/infra/storage/token"
	"github.com/studiobook/booking-service/pkg/txmanager"
)

// Config параметры usecase создания бронирования
type Config struct {
	TokenTTL            time.Duration // срок жизни токена отмены
	CancellationBaseURL string        // базовый URL страницы отмены, пустой - ссылка не формируется
}

// UseCase атомарно создает бронирование: проверка занятости и вставка
// выполняются в одной SERIALIZABLE транзакции
type UseCase struct {
	bookingRepo  BookingRepository
	tokenRepo    TokenRepository
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	windowPolicy WindowPolicy
	txManager    TxManager
	notifier     Notifier
	timeProvider TimeProvider
	loc          *time.Location
	cfg          Config
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase создания бронирования
func NewUseCase(
	bookingRepo BookingRepository,
	tokenRepo TokenRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	windowPolicy WindowPolicy,
	txManager TxManager,
	notifier Notifier,
	timeProvider TimeProvider,
	loc *time.Location,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		tokenRepo:    tokenRepo,
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		windowPolicy: windowPolicy,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: timeProvider,
		loc:          loc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute создает бронирование. Порядок проверок: валидация входа,
// окно бронирования, существование услуги, рабочие часы, затем
// транзакционная проверка занятости и вставка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Execute: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.loc)
	startAt := req.StartAt.In(uc.loc)

	if !startAt.After(now) {
		uc.logger.Warn("Execute: startAt %s is in the past", startAt.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: startAt must be in the future", ErrInvalidInput)
	}

	within, err := uc.windowPolicy.IsWithinWindow(ctx, startAt)
	if err != nil {
		uc.logger.Error("Execute: failed to resolve booking window: %v", err)
		return nil, fmt.Errorf("%w: Execute - booking window: %v", ErrInternal, err)
	}
	if !within {
		uc.logger.Warn("Execute: startAt %s exceeds booking window", startAt.Format(time.RFC3339))
		return nil, ErrHorizonExceeded
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, servicecatalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("Execute: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("Execute: failed to fetch service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Execute - fetch service: %v", ErrInternal, err)
	}

	endAt := startAt.Add(time.Duration(service.DurationMinutes) * time.Minute)

	if err := uc.checkWorkingHours(ctx, startAt, endAt); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ClientPhone:  req.ClientPhone,
		ServiceID:    service.ID,
		ServiceName:  service.Name,
		ServicePrice: service.Price,
		StartAt:      startAt,
		EndAt:        endAt,
		Status:       domain.StatusPending,
		Notes:        req.Notes,
	}

	var created *domain.Booking
	var token *domain.CancellationToken

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Читаем с блокировкой FOR UPDATE: конкурентные транзакции
		// за тот же интервал завершатся конфликтом сериализации
		busy, err := uc.bookingRepo.GetActiveBetween(txCtx, startAt, endAt)
		if err != nil {
			return fmt.Errorf("fetch occupancy: %w", err)
		}

		for _, b := range busy {
			if b.Overlaps(startAt, endAt) {
				return ErrSlotConflict
			}
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		token, err = uc.issueToken(txCtx, created.ID, now)
		if err != nil {
			return fmt.Errorf("issue cancellation token: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			uc.logger.Warn("Execute: slot conflict for [%s, %s)",
				startAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
			return nil, ErrSlotConflict
		}
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("Execute: serialization failure for [%s, %s)",
				startAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
			return nil, ErrSlotConflict
		}
		uc.logger.Error("Execute: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: Execute - transaction: %v", ErrInternal, err)
	}

	cancellationURL := uc.buildCancellationURL(token.Token)

	uc.logger.Info("Execute: created booking id=%d, service id=%d, start=%s",
		created.ID, service.ID, startAt.Format(time.RFC3339))

	// Уведомление вне транзакции, сбой не влияет на результат
	uc.notifier.NotifyBookingCreated(ctx, created, cancellationURL)

	return fromDomain(created, token, cancellationURL), nil
}

// checkWorkingHours проверяет, что интервал целиком помещается в одно
// открытое окно рабочего времени
func (uc *UseCase) checkWorkingHours(ctx context.Context, startAt, endAt time.Time) error {
	rules, err := uc.loadRules(ctx, startAt, endAt)
	if err != nil {
		return err
	}

	windows, err := rules.OpenWindows(startAt)
	if err != nil {
		uc.logger.Error("checkWorkingHours: malformed schedule: %v", err)
		return fmt.Errorf("%w: checkWorkingHours - open windows: %v", ErrInternal, err)
	}

	for _, w := range windows {
		if !startAt.Before(w.Start) && !endAt.After(w.End) {
			return nil
		}
	}

	uc.logger.Warn("checkWorkingHours: interval [%s, %s) outside working hours",
		startAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
	return ErrOutsideWorkingHours
}

// loadRules загружает расписание и закрытия на дату бронирования
func (uc *UseCase) loadRules(ctx context.Context, from, to time.Time) (*calendar.Rules, error) {
	hours, err := uc.scheduleRepo.GetBusinessHours(ctx)
	if err != nil {
		uc.logger.Error("loadRules: failed to fetch business hours: %v", err)
		return nil, fmt.Errorf("%w: loadRules - business hours: %v", ErrInternal, err)
	}

	breaks, err := uc.scheduleRepo.GetBusinessBreaks(ctx)
	if err != nil {
		uc.logger.Error("loadRules: failed to fetch business breaks: %v", err)
		return nil, fmt.Errorf("%w: loadRules - business breaks: %v", ErrInternal, err)
	}

	closures, err := uc.scheduleRepo.GetClosuresBetween(ctx, from, to)
	if err != nil {
		uc.logger.Error("loadRules: failed to fetch closures: %v", err)
		return nil, fmt.Errorf("%w: loadRules - closures: %v", ErrInternal, err)
	}

	return &calendar.Rules{
		Hours:    hours,
		Breaks:   breaks,
		Closures: closures,
		Loc:      uc.loc,
	}, nil
}

// issueToken идемпотентно выдает токен отмены: действующий токен
// переиспользуется, новый создается только при его отсутствии
func (uc *UseCase) issueToken(ctx context.Context, bookingID int64, now time.Time) (*domain.CancellationToken, error) {
	existing, err := uc.tokenRepo.GetActiveByBookingID(ctx, bookingID, now)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, tokenRepo.ErrTokenNotFound) {
		return nil, err
	}

	return uc.tokenRepo.Create(ctx, &domain.CancellationToken{
		BookingID: bookingID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(uc.cfg.TokenTTL),
	})
}

// buildCancellationURL формирует ссылку отмены для письма клиенту
func (uc *UseCase) buildCancellationURL(token string) string {
	if uc.cfg.CancellationBaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s?token=%s", uc.cfg.CancellationBaseURL, token)
}
