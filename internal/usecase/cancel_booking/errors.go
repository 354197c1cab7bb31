package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrTokenInvalidOrExpired возвращается для неизвестного, просроченного
	// или уже использованного токена отмены
	ErrTokenInvalidOrExpired = errors.New("cancel_booking: cancellation token invalid or expired")

	// ErrBookingNotCancellable возвращается для завершенных бронирований
	ErrBookingNotCancellable = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
