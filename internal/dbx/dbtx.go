// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// and helpers to run functions inside a transaction, once or with retries
// on conflicts.
package dbx

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxBeginner starts transactions. *sql.DB implements it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// on error or panic. Panics are re-raised after the rollback.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
//	    return err
//	})
func WithTx(ctx context.Context, db TxBeginner, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

// RetryPolicy tells WithTxRetry which errors are worth another attempt.
type RetryPolicy struct {
	// Attempts is the total number of tries, at least one.
	Attempts int
	// Backoff is the pause before the second try, doubled for each next one.
	Backoff time.Duration
	// Retryable reports whether err came from a transient conflict, such as
	// a serialization failure.
	Retryable func(err error) bool
}

// WithTxRetry runs WithTx and repeats the whole transaction while the error
// is retryable under p. fn must therefore be safe to run more than once.
// The last error is returned when the attempts run out or ctx is done.
func WithTxRetry(ctx context.Context, db TxBeginner, opts *sql.TxOptions, p RetryPolicy, fn func(ctx context.Context, tx DBTX) error) error {
	attempts := max(p.Attempts, 1)
	wait := p.Backoff

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return err
			case <-time.After(wait):
			}
			wait *= 2
		}

		err = WithTx(ctx, db, opts, fn)
		if err == nil || p.Retryable == nil || !p.Retryable(err) {
			return err
		}
	}
	return err
}
