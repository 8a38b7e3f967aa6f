package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseID validates a client-supplied entity id. Callers map the error to
// their entity's not-found sentinel, since a malformed id can never match a
// stored row.
func parseID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
