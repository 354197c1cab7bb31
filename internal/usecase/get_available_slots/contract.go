package get_available_slots

import (
	"context"
	"time"

	"github.com/studiobook/booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetBusinessHours(ctx context.Context) (map[int]domain.BusinessHours, error)
	GetBusinessBreaks(ctx context.Context) (map[int]domain.BusinessBreak, error)
	GetClosuresBetween(ctx context.Context, from, to time.Time) ([]domain.Closure, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveBetween получает активные бронирования, пересекающие [from, to)
	// Один range-запрос на весь диапазон дат
	GetActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceItem, error)
}

// WindowPolicy интерфейс политики окна бронирования
type WindowPolicy interface {
	LastBookableDate(ctx context.Context) (time.Time, error)
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
