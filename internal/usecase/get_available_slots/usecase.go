package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studiobook/booking-service/internal/calendar"
	"github.com/studiobook/booking-service/internal/domain"
	servicecatalogRepo "github.com/studiobook/booking-service/internal/infra/storage/servicecatalog"
)

// UseCase генерирует свободные слоты для записи по услуге на диапазон дат
type UseCase struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	windowPolicy WindowPolicy
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase генерации слотов
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	windowPolicy WindowPolicy,
	timeProvider TimeProvider,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		windowPolicy: windowPolicy,
		timeProvider: timeProvider,
		loc:          loc,
		logger:       logger,
	}
}

// Execute возвращает свободные слоты по дням для указанной услуги.
// Дни за пределами окна бронирования и прошедшие даты помечаются как
// закрытые, а не возвращают ошибку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Execute: validation failed: %v", err)
		return nil, err
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

	params := uc.resolveParams(req, service)

	now := uc.timeProvider.Now().In(uc.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)

	lastBookable, err := uc.windowPolicy.LastBookableDate(ctx)
	if err != nil {
		uc.logger.Error("Execute: failed to resolve booking window: %v", err)
		return nil, fmt.Errorf("%w: Execute - booking window: %v", ErrInternal, err)
	}

	dateFrom := time.Date(req.DateFrom.Year(), req.DateFrom.Month(), req.DateFrom.Day(), 0, 0, 0, 0, uc.loc)
	dateTo := dateFrom.AddDate(0, 0, params.days) // эксклюзивная граница диапазона

	rules, err := uc.loadRules(ctx, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	// Один range-запрос занятости на весь диапазон дат.
	// Нижняя граница расширена на буфер: бронирование, закончившееся
	// перед началом диапазона, всё ещё может блокировать первые слоты
	occupancyFrom := dateFrom.Add(-time.Duration(params.bufferMinutes) * time.Minute)
	busy, err := uc.bookingRepo.GetActiveBetween(ctx, occupancyFrom, dateTo)
	if err != nil {
		uc.logger.Error("Execute: failed to fetch active bookings: %v", err)
		return nil, fmt.Errorf("%w: Execute - fetch occupancy: %v", ErrInternal, err)
	}

	days := make([]DaySlots, 0, params.days)
	for i := 0; i < params.days; i++ {
		date := dateFrom.AddDate(0, 0, i)

		day := DaySlots{Date: date, Slots: []domain.Slot{}}

		// Прошедшие даты и даты за горизонтом - закрыты, без ошибки
		if date.Before(today) || date.After(lastBookable) || rules.IsClosedDate(date) {
			day.IsClosed = true
			days = append(days, day)
			continue
		}

		windows, err := rules.OpenWindows(date)
		if err != nil {
			uc.logger.Error("Execute: malformed schedule for %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: Execute - open windows: %v", ErrInternal, err)
		}

		day.Slots = generateSlots(windows, busy, params, now)
		days = append(days, day)
	}

	uc.logger.Info("Execute: generated slots for service id=%d, %d days from %s",
		req.ServiceID, params.days, dateFrom.Format(domain.DateFormat))

	return &Response{
		ServiceID:       req.ServiceID,
		DurationMinutes: params.durationMinutes,
		StepMinutes:     params.stepMinutes,
		BufferMinutes:   params.bufferMinutes,
		Days:            days,
	}, nil
}

// slotParams применённые параметры генерации после дефолтов и clamping
type slotParams struct {
	durationMinutes int
	stepMinutes     int
	bufferMinutes   int
	days            int
}

// resolveParams применяет значения по умолчанию и ограничивает диапазоны.
// Некорректные значения шага и диапазона дней приводятся к границам,
// а не отклоняются
func (uc *UseCase) resolveParams(req *Request, service *domain.ServiceItem) slotParams {
	params := slotParams{
		durationMinutes: service.DurationMinutes,
		stepMinutes:     domain.DefaultStepMinutes,
		bufferMinutes:   domain.MinBufferMinutes,
		days:            1,
	}

	if req.DurationMinutes != nil {
		params.durationMinutes = *req.DurationMinutes
	}
	if req.StepMinutes != nil {
		params.stepMinutes = domain.ClampStepMinutes(*req.StepMinutes)
	}
	if req.BufferMinutes != nil {
		params.bufferMinutes = *req.BufferMinutes
	}
	if req.Days > 0 {
		params.days = domain.ClampDaysRange(req.Days)
	}

	return params
}

// loadRules загружает расписание и закрытия для диапазона дат
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
