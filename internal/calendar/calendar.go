package calendar

import (
	"fmt"
	"time"

	"github.com/studiobook/booking-service/internal/domain"
)

// Window открытый интервал рабочего времени, абсолютные моменты времени
type Window struct {
	Start time.Time
	End   time.Time
}

// Rules правила календаря: часы работы по дням недели, перерывы и
// исключительные закрытия. Чистая структура без I/O - все данные
// загружаются заранее и передаются сюда
type Rules struct {
	Hours    map[int]domain.BusinessHours // ключ - день недели 0-6 (0 = воскресенье)
	Breaks   map[int]domain.BusinessBreak
	Closures []domain.Closure
	Loc      *time.Location // таймзона бизнеса
}

// LocalDate возвращает локальную полночь календарной даты в таймзоне бизнеса.
// День недели вычисляется по локализованной дате, а не по UTC - иначе
// около полуночи возможна ошибка на день
func (r *Rules) LocalDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.Loc)
}

// IsClosedDate проверяет, что бизнес полностью закрыт в указанную дату:
// дата попадает в закрытие, либо день недели закрыт, либо расписание
// для него не задано
func (r *Rules) IsClosedDate(date time.Time) bool {
	for i := range r.Closures {
		if r.Closures[i].Contains(date) {
			return true
		}
	}

	weekday := int(r.LocalDate(date).Weekday())
	hours, ok := r.Hours[weekday]
	if !ok || hours.IsClosed {
		return true
	}

	return hours.OpenTime == nil || hours.CloseTime == nil
}

// OpenWindows возвращает открытые интервалы рабочего времени на указанную
// календарную дату в порядке возрастания, без пересечений.
// Закрытый день - пустой список. Перерыв вырезается из окна часов работы
// и может дать ноль, одно или два под-окна
func (r *Rules) OpenWindows(date time.Time) ([]Window, error) {
	if r.IsClosedDate(date) {
		return []Window{}, nil
	}

	localDate := r.LocalDate(date)
	weekday := int(localDate.Weekday())
	hours := r.Hours[weekday]

	openMin, err := hours.OpenTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrMalformedTime, err)
	}
	closeMin, err := hours.CloseTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: close time: %v", ErrMalformedTime, err)
	}

	// openTime == closeTime даёт пустое окно
	if openMin >= closeMin {
		return []Window{}, nil
	}

	windows := [][2]int{{openMin, closeMin}}

	// Вырезаем перерыв, если он включён для этого дня недели
	if brk, ok := r.Breaks[weekday]; ok && brk.Enabled && brk.BreakStart != nil && brk.BreakEnd != nil {
		breakStart, err := brk.BreakStart.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: break start: %v", ErrMalformedTime, err)
		}
		breakEnd, err := brk.BreakEnd.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: break end: %v", ErrMalformedTime, err)
		}

		if breakStart < breakEnd {
			windows = subtractInterval(windows, breakStart, breakEnd)
		}
	}

	result := make([]Window, 0, len(windows))
	for _, w := range windows {
		result = append(result, Window{
			Start: r.wallClock(localDate, w[0]),
			End:   r.wallClock(localDate, w[1]),
		})
	}

	return result, nil
}

// wallClock строит абсолютный момент из минут от полуночи через компоненты
// часа и минуты, а не через Add от полуночи: в день перевода часов смещение
// от полуночи сдвинуло бы стеночное время на величину перехода
func (r *Rules) wallClock(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, r.Loc)
}

// subtractInterval вырезает [cutStart, cutEnd) из каждого окна.
// Перерыв вне окна оставляет его нетронутым, целиком внутри - делит на два,
// пересекающий край - обрезает этот край
func subtractInterval(windows [][2]int, cutStart, cutEnd int) [][2]int {
	result := make([][2]int, 0, len(windows)+1)

	for _, w := range windows {
		start, end := w[0], w[1]

		overlapStart := max(start, cutStart)
		overlapEnd := min(end, cutEnd)

		if overlapStart >= overlapEnd {
			// Нет пересечения
			result = append(result, w)
			continue
		}

		if start < overlapStart {
			result = append(result, [2]int{start, overlapStart})
		}
		if overlapEnd < end {
			result = append(result, [2]int{overlapEnd, end})
		}
	}

	return result
}
