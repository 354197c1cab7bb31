package settings

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"

	"github.com/studiobook/booking-service/pkg/dbmetrics"
	"github.com/studiobook/booking-service/pkg/psqlbuilder"
)

// Repository key-value хранилище настроек приложения (таблица app_settings)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetInt получает целочисленную настройку по ключу
func (r *Repository) GetInt(ctx context.Context, key string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("value").
		From("app_settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetInt - build select query: %v", ErrBuildQuery, err)
	}

	var raw string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, ErrSettingNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetInt - execute query: %w", ErrExecQuery, err)
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: GetInt - key=%s value=%q: %v", ErrInvalidValue, key, raw, err)
	}

	return value, nil
}

// SetInt атомарно записывает целочисленную настройку (upsert по ключу)
func (r *Repository) SetInt(ctx context.Context, key string, value int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("app_settings").
		Columns("key", "value").
		Values(key, strconv.Itoa(value)).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetInt - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetInt - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}
