package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/studiobook/booking-service/internal/domain"
	getAvailableSlots "github.com/studiobook/booking-service/internal/usecase/get_available_slots"
)

// GetAvailableSlotsQuery параметры запроса из query string
type GetAvailableSlotsQuery struct {
	Date     string // один день, YYYY-MM-DD
	DateFrom string // начало диапазона, YYYY-MM-DD
	Days     int
	Duration *int
	Step     *int
	Buffer   *int
}

// ParseQuery разбирает query string. Параметры date и dateFrom
// взаимоисключающие: date задает один день
func ParseQuery(values url.Values) (*GetAvailableSlotsQuery, error) {
	q := &GetAvailableSlotsQuery{
		Date:     values.Get("date"),
		DateFrom: values.Get("dateFrom"),
	}

	if q.Date != "" && q.DateFrom != "" {
		return nil, fmt.Errorf("date and dateFrom are mutually exclusive")
	}
	if q.Date == "" && q.DateFrom == "" {
		return nil, fmt.Errorf("date or dateFrom is required")
	}

	if raw := values.Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("days must be an integer")
		}
		q.Days = days
	}

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{"durationMinutes", &q.Duration},
		{"stepMinutes", &q.Step},
		{"bufferMinutes", &q.Buffer},
	} {
		if raw := values.Get(p.name); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%s must be an integer", p.name)
			}
			*p.dst = &v
		}
	}

	return q, nil
}

// ToUseCaseRequest конвертирует query в модель use case
func (q *GetAvailableSlotsQuery) ToUseCaseRequest(serviceID int64) (*getAvailableSlots.Request, error) {
	rawDate := q.Date
	days := 1
	if q.DateFrom != "" {
		rawDate = q.DateFrom
		days = q.Days
	}

	dateFrom, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		return nil, fmt.Errorf("invalid date, expected YYYY-MM-DD: %w", err)
	}

	return &getAvailableSlots.Request{
		ServiceID:       serviceID,
		DateFrom:        dateFrom,
		Days:            days,
		DurationMinutes: q.Duration,
		StepMinutes:     q.Step,
		BufferMinutes:   q.Buffer,
	}, nil
}

// Response модели

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID       int64              `json:"serviceId"`
	DurationMinutes int                `json:"durationMinutes"`
	StepMinutes     int                `json:"stepMinutes"`
	BufferMinutes   int                `json:"bufferMinutes"`
	Days            []DaySlotsResponse `json:"days"`
}

// DaySlotsResponse слоты на одну дату
type DaySlotsResponse struct {
	Date     string         `json:"date"`
	IsClosed bool           `json:"isClosed"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse один свободный слот
type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	days := make([]DaySlotsResponse, len(resp.Days))
	for i, d := range resp.Days {
		slots := make([]SlotResponse, len(d.Slots))
		for j, s := range d.Slots {
			slots[j] = SlotResponse{
				Start: s.Start.Format(time.RFC3339),
				End:   s.End.Format(time.RFC3339),
			}
		}
		days[i] = DaySlotsResponse{
			Date:     d.Date.Format(domain.DateFormat),
			IsClosed: d.IsClosed,
			Slots:    slots,
		}
	}

	return &AvailableSlotsResponse{
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		StepMinutes:     resp.StepMinutes,
		BufferMinutes:   resp.BufferMinutes,
		Days:            days,
	}
}
