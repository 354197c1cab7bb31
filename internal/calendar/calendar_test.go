package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobook/booking-service/internal/domain"
	"github.com/studiobook/booking-service/pkg/types"
)

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

// weekdayHours формирует расписание пн-пт 09:00-18:00
func weekdayHours() map[int]domain.BusinessHours {
	hours := make(map[int]domain.BusinessHours)
	for d := 1; d <= 5; d++ {
		hours[d] = domain.BusinessHours{
			DayOfWeek: d,
			OpenTime:  ts("09:00"),
			CloseTime: ts("18:00"),
		}
	}
	return hours
}

func TestOpenWindows_NoBreak(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	rules := &Rules{
		Hours: weekdayHours(),
		Loc:   loc,
	}

	// Вторник
	date := time.Date(2026, 9, 8, 0, 0, 0, 0, loc)
	windows, err := rules.OpenWindows(date)
	require.NoError(t, err)

	require.Len(t, windows, 1)
	assert.Equal(t, time.Date(2026, 9, 8, 9, 0, 0, 0, loc), windows[0].Start)
	assert.Equal(t, time.Date(2026, 9, 8, 18, 0, 0, 0, loc), windows[0].End)
}

func TestOpenWindows_BreakSplitsWindow(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	rules := &Rules{
		Hours: weekdayHours(),
		Breaks: map[int]domain.BusinessBreak{
			2: {DayOfWeek: 2, Enabled: true, BreakStart: ts("12:00"), BreakEnd: ts("13:00")},
		},
		Loc: loc,
	}

	date := time.Date(2026, 9, 8, 0, 0, 0, 0, loc)
	windows, err := rules.OpenWindows(date)
	require.NoError(t, err)

	require.Len(t, windows, 2)
	assert.Equal(t, time.Date(2026, 9, 8, 9, 0, 0, 0, loc), windows[0].Start)
	assert.Equal(t, time.Date(2026, 9, 8, 12, 0, 0, 0, loc), windows[0].End)
	assert.Equal(t, time.Date(2026, 9, 8, 13, 0, 0, 0, loc), windows[1].Start)
	assert.Equal(t, time.Date(2026, 9, 8, 18, 0, 0, 0, loc), windows[1].End)
}

func TestOpenWindows_BreakOverlapsEdge(t *testing.T) {
	loc := time.UTC

	rules := &Rules{
		Hours: map[int]domain.BusinessHours{
			1: {DayOfWeek: 1, OpenTime: ts("09:00"), CloseTime: ts("12:00")},
		},
		Breaks: map[int]domain.BusinessBreak{
			1: {DayOfWeek: 1, Enabled: true, BreakStart: ts("11:00"), BreakEnd: ts("14:00")},
		},
		Loc: loc,
	}

	// Понедельник
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	windows, err := rules.OpenWindows(date)
	require.NoError(t, err)

	require.Len(t, windows, 1)
	assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, loc), windows[0].Start)
	assert.Equal(t, time.Date(2026, 9, 7, 11, 0, 0, 0, loc), windows[0].End)
}

func TestOpenWindows_DSTTransitionKeepsWallClock(t *testing.T) {
	// Таймзона бизнеса настраиваемая и может переводить часы.
	// Окна должны открываться по стеночному времени и в дни перехода
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	rules := &Rules{
		Hours: map[int]domain.BusinessHours{
			0: {DayOfWeek: 0, OpenTime: ts("09:00"), CloseTime: ts("12:00")},
		},
		Loc: loc,
	}

	tests := []struct {
		name string
		date time.Time
	}{
		{"перевод на летнее время", time.Date(2026, 3, 29, 0, 0, 0, 0, loc)},  // воскресенье
		{"перевод на зимнее время", time.Date(2026, 10, 25, 0, 0, 0, 0, loc)}, // воскресенье
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows, err := rules.OpenWindows(tt.date)
			require.NoError(t, err)

			require.Len(t, windows, 1)
			assert.Equal(t, "09:00", windows[0].Start.In(loc).Format("15:04"))
			assert.Equal(t, "12:00", windows[0].End.In(loc).Format("15:04"))
		})
	}
}

func TestOpenWindows_DisabledBreakIgnored(t *testing.T) {
	loc := time.UTC

	rules := &Rules{
		Hours: weekdayHours(),
		Breaks: map[int]domain.BusinessBreak{
			2: {DayOfWeek: 2, Enabled: false, BreakStart: ts("12:00"), BreakEnd: ts("13:00")},
		},
		Loc: loc,
	}

	date := time.Date(2026, 9, 8, 0, 0, 0, 0, loc)
	windows, err := rules.OpenWindows(date)
	require.NoError(t, err)
	require.Len(t, windows, 1)
}

func TestOpenWindows_OpenEqualsClose(t *testing.T) {
	loc := time.UTC

	rules := &Rules{
		Hours: map[int]domain.BusinessHours{
			1: {DayOfWeek: 1, OpenTime: ts("09:00"), CloseTime: ts("09:00")},
		},
		Loc: loc,
	}

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	windows, err := rules.OpenWindows(date)
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestOpenWindows_MalformedTime(t *testing.T) {
	loc := time.UTC

	rules := &Rules{
		Hours: map[int]domain.BusinessHours{
			1: {DayOfWeek: 1, OpenTime: ts("9am"), CloseTime: ts("18:00")},
		},
		Loc: loc,
	}

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	_, err := rules.OpenWindows(date)
	assert.ErrorIs(t, err, ErrMalformedTime)
}

func TestIsClosedDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	tests := []struct {
		name     string
		rules    *Rules
		date     time.Time
		expected bool
	}{
		{
			name:     "рабочий день открыт",
			rules:    &Rules{Hours: weekdayHours(), Loc: loc},
			date:     time.Date(2026, 9, 9, 0, 0, 0, 0, loc), // среда
			expected: false,
		},
		{
			name:     "воскресенье без расписания закрыто",
			rules:    &Rules{Hours: weekdayHours(), Loc: loc},
			date:     time.Date(2026, 9, 6, 0, 0, 0, 0, loc),
			expected: true,
		},
		{
			name: "явно закрытый день",
			rules: &Rules{
				Hours: map[int]domain.BusinessHours{
					1: {DayOfWeek: 1, IsClosed: true, OpenTime: ts("09:00"), CloseTime: ts("18:00")},
				},
				Loc: loc,
			},
			date:     time.Date(2026, 9, 7, 0, 0, 0, 0, loc),
			expected: true,
		},
		{
			name: "дата внутри закрытия",
			rules: &Rules{
				Hours: weekdayHours(),
				Closures: []domain.Closure{
					{
						StartDate: time.Date(2026, 9, 8, 0, 0, 0, 0, loc),
						EndDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, loc),
						Reason:    "отпуск",
					},
				},
				Loc: loc,
			},
			date:     time.Date(2026, 9, 9, 0, 0, 0, 0, loc),
			expected: true,
		},
		{
			name: "границы закрытия включительные",
			rules: &Rules{
				Hours: weekdayHours(),
				Closures: []domain.Closure{
					{
						StartDate: time.Date(2026, 9, 8, 0, 0, 0, 0, loc),
						EndDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, loc),
					},
				},
				Loc: loc,
			},
			date:     time.Date(2026, 9, 10, 0, 0, 0, 0, loc),
			expected: true,
		},
		{
			name: "день после закрытия открыт",
			rules: &Rules{
				Hours: weekdayHours(),
				Closures: []domain.Closure{
					{
						StartDate: time.Date(2026, 9, 8, 0, 0, 0, 0, loc),
						EndDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, loc),
					},
				},
				Loc: loc,
			},
			date:     time.Date(2026, 9, 11, 0, 0, 0, 0, loc),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rules.IsClosedDate(tt.date))
		})
	}
}

func TestLocalDate_WeekdayNearMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	rules := &Rules{Hours: weekdayHours(), Loc: loc}

	// Дата пришла как UTC-полночь. День недели должен вычисляться по
	// календарной дате, а не по моменту времени в другой таймзоне
	date := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	local := rules.LocalDate(date)

	assert.Equal(t, time.Tuesday, local.Weekday())
	assert.Equal(t, 0, local.Hour())
}
