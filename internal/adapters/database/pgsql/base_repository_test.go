package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: pgSerializationFailure}, want: apperrors.ErrConcurrency},
		{name: "deadlock", err: &pgconn.PgError{Code: pgDeadlockDetected}, want: apperrors.ErrConcurrency},
		{name: "lock timeout", err: &pgconn.PgError{Code: pgLockNotAvailable}, want: apperrors.ErrConcurrency},
		{name: "wrapped lock timeout", err: fmt.Errorf("scan: %w", &pgconn.PgError{Code: pgLockNotAvailable}), want: apperrors.ErrConcurrency},
		{name: "unique violation", err: &pgconn.PgError{Code: pgUniqueViolation}, want: apperrors.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapPgError(tt.err, "op"), tt.want)
		})
	}

	t.Run("other errors are wrapped unchanged", func(t *testing.T) {
		base := errors.New("connection reset")
		err := mapPgError(base, "op")
		assert.ErrorIs(t, err, base)
		assert.NotErrorIs(t, err, apperrors.ErrConcurrency)
		assert.Equal(t, "op: connection reset", err.Error())
	})

	assert.NoError(t, mapPgError(nil, "op"))
}

func TestLimitOffset(t *testing.T) {
	args := []any{"tenant"}
	assert.Equal(t, " LIMIT $2 OFFSET $3", limitOffset(&args, 21, 40))
	assert.Equal(t, []any{"tenant", 21, 40}, args)

	args = []any{"tenant"}
	assert.Equal(t, "", limitOffset(&args, 0, 0))
	assert.Len(t, args, 1)
}

func TestPrefixColumns(t *testing.T) {
	assert.Equal(t, "e.a, e.b, e.c", prefixColumns("e.", "a, b,\n\tc"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now`, escapeLike("50% off_now"))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "x", *nullString("x"))
	assert.Equal(t, "", derefString(nil))
}
