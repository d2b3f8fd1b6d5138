package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"mindnotes/internal/config"
	"mindnotes/internal/domain"
)

// isPgNoRowsError checks if error is a "no rows" error
func isPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isPgForeignKeyError checks if error is a foreign key violation
func isPgForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

// storeErr wraps a raw store failure into the domain taxonomy. The in-memory
// view is left untouched by callers when one is returned.
func storeErr(action string, err error) error {
	return &domain.StoreError{Action: action, Err: err}
}

// callCtx bounds a single store-gateway call. Operations are never retried
// automatically; a timeout surfaces like any other store failure.
func callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.StoreCallTimeout)
}
