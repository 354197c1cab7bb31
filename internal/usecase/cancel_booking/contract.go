package cancel_booking

import (
	"context"
	"time"

	"github.com/studiobook/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// TokenRepository интерфейс репозитория токенов отмены
type TokenRepository interface {
	GetByToken(ctx context.Context, value string) (*domain.CancellationToken, error)
	// MarkUsed атомарно помечает токен использованным, повторный вызов
	// возвращает ErrTokenAlreadyUsed
	MarkUsed(ctx context.Context, id int64, now time.Time) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс клиента уведомлений. Сбой уведомления не влияет
// на результат отмены
type Notifier interface {
	NotifyBookingCancelled(ctx context.Context, booking *domain.Booking)
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
