package get_available_slots

import (
	"time"

	"github.com/studiobook/booking-service/internal/calendar"
	"github.com/studiobook/booking-service/internal/domain"
)

// generateSlots перебирает открытые окна дня с заданным шагом и возвращает
// слоты, не пересекающиеся с занятыми интервалами. Интервалы полуоткрытые:
// слот, начинающийся ровно в момент окончания бронирования, свободен.
// Слоты, начинающиеся не позже текущего момента, отбрасываются
func generateSlots(windows []calendar.Window, busy []*domain.Booking, params slotParams, now time.Time) []domain.Slot {
	duration := time.Duration(params.durationMinutes) * time.Minute
	step := time.Duration(params.stepMinutes) * time.Minute
	buffer := time.Duration(params.bufferMinutes) * time.Minute

	slots := []domain.Slot{}
	for _, w := range windows {
		for cursor := w.Start; !cursor.Add(duration).After(w.End); cursor = cursor.Add(step) {
			slotEnd := cursor.Add(duration)

			if !cursor.After(now) {
				continue
			}

			if !overlapsBusy(cursor, slotEnd, busy, buffer) {
				slots = append(slots, domain.Slot{Start: cursor, End: slotEnd})
			}
		}
	}

	return slots
}

// overlapsBusy проверяет пересечение слота с занятыми интервалами.
// Буфер расширяет хвост каждого занятого интервала: следующая запись
// возможна не раньше, чем через buffer после окончания предыдущей
func overlapsBusy(start, end time.Time, busy []*domain.Booking, buffer time.Duration) bool {
	for _, b := range busy {
		if domain.IntervalsOverlap(start, end, b.StartAt, b.EndAt.Add(buffer)) {
			return true
		}
	}
	return false
}
