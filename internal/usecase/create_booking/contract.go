package create_booking

import (
	"context"
	"time"

	"github.com/studiobook/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetActiveBetween внутри транзакции выполняется с блокировкой FOR UPDATE
	GetActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// TokenRepository интерфейс репозитория токенов отмены
type TokenRepository interface {
	Create(ctx context.Context, token *domain.CancellationToken) (*domain.CancellationToken, error)
	GetActiveByBookingID(ctx context.Context, bookingID int64, now time.Time) (*domain.CancellationToken, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetBusinessHours(ctx context.Context) (map[int]domain.BusinessHours, error)
	GetBusinessBreaks(ctx context.Context) (map[int]domain.BusinessBreak, error)
	GetClosuresBetween(ctx context.Context, from, to time.Time) ([]domain.Closure, error)
}

// WindowPolicy интерфейс политики окна бронирования
type WindowPolicy interface {
	IsWithinWindow(ctx context.Context, start time.Time) (bool, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	// DoSerializable выполняет fn в SERIALIZABLE транзакции с повторами
	// при конфликтах сериализации
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс клиента уведомлений. Сбой уведомления не влияет
// на результат бронирования
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, booking *domain.Booking, cancellationURL string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
