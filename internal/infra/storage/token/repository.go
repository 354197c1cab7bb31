package token

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/studiobook/booking-service/internal/domain"
	"github.com/studiobook/booking-service/pkg/dbmetrics"
	"github.com/studiobook/booking-service/pkg/psqlbuilder"
)

var tokenColumns = []string{
	"id",
	"booking_id",
	"token",
	"expires_at",
	"used_at",
	"created_at",
}

// Repository репозиторий токенов отмены бронирований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория токенов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый токен отмены
func (r *Repository) Create(ctx context.Context, t *domain.CancellationToken) (*domain.CancellationToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cancellation_tokens").
		Columns(
			"booking_id",
			"token",
			"expires_at",
		).
		Values(
			t.BookingID,
			t.Token,
			t.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time

	return t, nil
}

// GetByToken получает токен отмены по его значению
func (r *Repository) GetByToken(ctx context.Context, value string) (*domain.CancellationToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tokenColumns...).
		From("cancellation_tokens").
		Where(squirrel.Eq{"token": value}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanToken(executor.QueryRowContext(ctx, query, args...))
}

// GetActiveByBookingID получает неиспользованный и непросроченный токен
// бронирования. Используется для идемпотентной выдачи: повторный запрос
// возвращает существующий токен вместо создания дубликата
func (r *Repository) GetActiveByBookingID(ctx context.Context, bookingID int64, now time.Time) (*domain.CancellationToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tokenColumns...).
		From("cancellation_tokens").
		Where(squirrel.Eq{"booking_id": bookingID, "used_at": nil}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanToken(executor.QueryRowContext(ctx, query, args...))
}

// MarkUsed помечает токен использованным
// Условие used_at IS NULL делает операцию одноразовой: при гонке двух отмен
// по одному токену вторая получает ErrTokenAlreadyUsed
func (r *Repository) MarkUsed(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cancellation_tokens").
		Set("used_at", now).
		Where(squirrel.Eq{"id": id, "used_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkUsed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkUsed - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkUsed - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTokenAlreadyUsed
	}

	return nil
}

// scanToken сканирует одну строку результата в токен
func (r *Repository) scanToken(row *sql.Row) (*domain.CancellationToken, error) {
	var t domain.CancellationToken
	var createdAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.BookingID,
		&t.Token,
		&t.ExpiresAt,
		&t.UsedAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanToken - scan row: %w", ErrScanRow, err)
	}

	t.CreatedAt = createdAt.Time

	return &t, nil
}
