package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pool and transaction operations the repositories
// use, so the same query code runs inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txContextKey struct{}

// querierFrom returns the ambient transaction carried by ctx, or the pool
// when no transaction is open.
func querierFrom(ctx context.Context, db *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}

// txRunner gives the repositories a shared WithinTx implementation over the
// pool they already hold.
type txRunner struct {
	db *pgxpool.Pool
}

// WithinTx runs fn as one atomic unit. The ctx passed to fn carries the open
// transaction, so every repository call made with it joins the same
// transaction regardless of which repository started it. A nested call joins
// the ambient transaction instead of opening a second one.
func (r txRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
