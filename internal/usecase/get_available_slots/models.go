package get_available_slots

import (
	"time"

	"github.com/studiobook/booking-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	DateFrom  time.Time // Первая дата диапазона (без времени)
	Days      int       // Количество дней (0 = один день), ограничивается [1, 60]

	DurationMinutes *int // Переопределение длительности (опционально, по умолчанию из услуги)
	StepMinutes     *int // Шаг генерации слотов (опционально), ограничивается [5, 120]
	BufferMinutes   *int // Буфер после занятых интервалов (опционально)
}

// Response модель ответа со слотами по дням
type Response struct {
	ServiceID       int64      // ID услуги
	DurationMinutes int        // Применённая длительность слота
	StepMinutes     int        // Применённый шаг
	BufferMinutes   int        // Применённый буфер
	Days            []DaySlots // Слоты по дням в порядке возрастания дат
}

// DaySlots слоты на одну календарную дату
type DaySlots struct {
	Date     time.Time     // Календарная дата
	IsClosed bool          // Закрыто: выходной, закрытие или дата вне окна бронирования
	Slots    []domain.Slot // Свободные слоты в порядке возрастания
}
