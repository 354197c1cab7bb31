package window

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/studiobook/booking-service/internal/domain"
	settingsRepo "github.com/studiobook/booking-service/internal/infra/storage/settings"
)

// Service политика окна бронирования: скользящий горизонт в днях,
// дальше которого бронирование невозможно. Значение хранится в app_settings
// и ограничивается диапазоном [0, 90] при записи
type Service struct {
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса окна бронирования
func NewService(settingsRepo SettingsRepository, loc *time.Location, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// MaxDays возвращает текущий горизонт бронирования в днях
// Если настройка отсутствует, возвращает значение по умолчанию
func (s *Service) MaxDays(ctx context.Context) (int, error) {
	days, err := s.settingsRepo.GetInt(ctx, domain.SettingBookingMaxDays)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingNotFound) {
			return domain.DefaultBookingMaxDays, nil
		}
		s.logger.Error("MaxDays: failed to read setting: %v", err)
		return 0, fmt.Errorf("%w: MaxDays - repository error: %v", ErrInternal, err)
	}

	// Значение могло быть записано до ужесточения границ
	return domain.ClampBookingMaxDays(days), nil
}

// SetMaxDays записывает горизонт бронирования, ограничивая его диапазоном
// [0, 90]. Возвращает фактически сохранённое значение.
// Уже созданные бронирования за пределами нового горизонта остаются в силе
func (s *Service) SetMaxDays(ctx context.Context, days int) (int, error) {
	clamped := domain.ClampBookingMaxDays(days)
	if clamped != days {
		s.logger.Warn("SetMaxDays: requested %d days, clamped to %d", days, clamped)
	}

	if err := s.settingsRepo.SetInt(ctx, domain.SettingBookingMaxDays, clamped); err != nil {
		s.logger.Error("SetMaxDays: failed to persist setting: %v", err)
		return 0, fmt.Errorf("%w: SetMaxDays - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetMaxDays: booking horizon set to %d days", clamped)
	return clamped, nil
}

// SetLastBookableDate записывает горизонт через последнюю доступную дату:
// количество дней от сегодня (в таймзоне бизнеса) до указанной даты
func (s *Service) SetLastBookableDate(ctx context.Context, date time.Time) (int, error) {
	today := s.today()
	target := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)

	// Сутки с переводом часов длятся не 24 часа, поэтому деление с
	// усечением занизило бы счёт на день - округляем
	days := int(math.Round(target.Sub(today).Hours() / 24))
	return s.SetMaxDays(ctx, days)
}

// LastBookableDate возвращает последнюю дату, на которую разрешено
// бронирование (включительно)
func (s *Service) LastBookableDate(ctx context.Context) (time.Time, error) {
	days, err := s.MaxDays(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return s.today().AddDate(0, 0, days), nil
}

// IsWithinWindow проверяет, что момент начала бронирования не выходит за
// горизонт. Дата ровно через N дней включительно доступна, N+1 - нет
func (s *Service) IsWithinWindow(ctx context.Context, start time.Time) (bool, error) {
	lastDate, err := s.LastBookableDate(ctx)
	if err != nil {
		return false, err
	}

	local := start.In(s.loc)
	startDate := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	return !startDate.After(lastDate), nil
}

// today возвращает локальную полночь текущего дня в таймзоне бизнеса
func (s *Service) today() time.Time {
	now := s.timeProvider.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}
