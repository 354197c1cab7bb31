package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotConflict возвращается, когда интервал уже занят другим бронированием
	ErrSlotConflict = errors.New("create_booking: slot already taken")

	// ErrHorizonExceeded возвращается, когда дата начала за пределами окна бронирования
	ErrHorizonExceeded = errors.New("create_booking: start date exceeds booking window")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("create_booking: interval outside working hours")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
