package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobook/booking-service/pkg/dbmetrics"
)

var errFakeExec = errors.New("fakestorage: failed to execute query")

type fakeTx struct {
	commitErr error
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error   { return t.commitErr }
func (t *fakeTx) Rollback() error { return nil }

type fakeTxBeginner struct {
	begins     int
	commitErrs []error // ошибка коммита для каждой транзакции по порядку
}

func (d *fakeTxBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	if d.begins < len(d.commitErrs) {
		tx.commitErr = d.commitErrs[d.begins]
	}
	d.begins++
	return tx, nil
}

// serializationFailure имитирует ошибку 40001, обёрнутую репозиторием
// тем же способом, что и storage-слой
func serializationFailure() error {
	return fmt.Errorf("%w: GetActiveBetween - execute query: %w", errFakeExec, &pq.Error{Code: "40001"})
}

func TestDoSerializable_RetriesOnStatementFailure(t *testing.T) {
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return serializationFailure()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoSerializable_RetriesOnCommitFailure(t *testing.T) {
	// Конфликт сериализации на COMMIT первой транзакции, вторая успешна
	db := &fakeTxBeginner{commitErrs: []error{&pq.Error{Code: "40001"}, nil}}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, db.begins)
}

func TestDoSerializable_ExhaustedRetriesStayDetectable(t *testing.T) {
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return serializationFailure()
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.ErrorIs(t, err, ErrTransaction)
	// После исчерпания повторов вызывающий всё ещё должен распознать
	// конфликт сериализации и ответить 409, а не 500
	assert.True(t, IsSerializationFailure(err))
}

func TestDoSerializable_NoRetryOnOtherErrors(t *testing.T) {
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	boom := errors.New("boom")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock detected", &pq.Error{Code: "40P01"}, true},
		{"обёрнута репозиторием", serializationFailure(), true},
		{"обёрнута дважды", fmt.Errorf("%w: commit: %w", ErrTransaction, serializationFailure()), true},
		{"другой код SQLSTATE", &pq.Error{Code: "23505"}, false},
		{"обычная ошибка", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSerializationFailure(tt.err))
		})
	}
}
