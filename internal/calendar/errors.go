package calendar

import "errors"

var (
	// ErrMalformedTime возвращается при некорректном формате времени
	// в расписании (часы работы или перерыв)
	ErrMalformedTime = errors.New("calendar: malformed time value")
)
