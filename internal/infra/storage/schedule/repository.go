package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/studiobook/booking-service/internal/domain"
	"github.com/studiobook/booking-service/pkg/dbmetrics"
	"github.com/studiobook/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий расписания: часы работы, перерывы и закрытия
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusinessHours получает часы работы по всем дням недели
// Возвращает map по дню недели (0 = воскресенье)
func (r *Repository) GetBusinessHours(ctx context.Context) (map[int]domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_closed",
		"open_time",
		"close_time",
	).
		From("business_hours").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make(map[int]domain.BusinessHours)
	for rows.Next() {
		var h domain.BusinessHours
		if err := rows.Scan(&h.DayOfWeek, &h.IsClosed, &h.OpenTime, &h.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetBusinessHours - scan row: %w", ErrScanRow, err)
		}
		hours[h.DayOfWeek] = h
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - rows error: %w", ErrScanRow, err)
	}

	return hours, nil
}

// GetBusinessBreaks получает перерывы по всем дням недели
func (r *Repository) GetBusinessBreaks(ctx context.Context) (map[int]domain.BusinessBreak, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"enabled",
		"break_start",
		"break_end",
	).
		From("business_breaks").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessBreaks - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make(map[int]domain.BusinessBreak)
	for rows.Next() {
		var b domain.BusinessBreak
		if err := rows.Scan(&b.DayOfWeek, &b.Enabled, &b.BreakStart, &b.BreakEnd); err != nil {
			return nil, fmt.Errorf("%w: GetBusinessBreaks - scan row: %w", ErrScanRow, err)
		}
		breaks[b.DayOfWeek] = b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBusinessBreaks - rows error: %w", ErrScanRow, err)
	}

	return breaks, nil
}

// GetClosuresBetween получает закрытия, пересекающие диапазон календарных дат
// [from, to] (обе границы включительно)
func (r *Repository) GetClosuresBetween(ctx context.Context, from, to time.Time) ([]domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"start_date",
		"end_date",
		"reason",
	).
		From("closures").
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.GtOrEq{"end_date": from}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClosuresBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetClosuresBetween - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	closures := make([]domain.Closure, 0)
	for rows.Next() {
		var c domain.Closure
		if err := rows.Scan(&c.ID, &c.StartDate, &c.EndDate, &c.Reason); err != nil {
			return nil, fmt.Errorf("%w: GetClosuresBetween - scan row: %w", ErrScanRow, err)
		}
		closures = append(closures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetClosuresBetween - rows error: %w", ErrScanRow, err)
	}

	return closures, nil
}
