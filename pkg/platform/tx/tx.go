// Package tx runs units of work inside a read-committed PostgreSQL
// transaction bounded by a timeout.
package tx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	dErrors "respass/pkg/domain-errors"
)

const DefaultTimeout = 5 * time.Second

// Beginner is satisfied by *pgxpool.Pool and by pgxmock pools.
type Beginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Runner opens one transaction per Run call.
type Runner struct {
	db      Beginner
	timeout time.Duration
}

func NewRunner(db Beginner, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{db: db, timeout: timeout}
}

// Run commits when fn returns nil and rolls back otherwise. A context that has
// no deadline gets the runner timeout; expiry surfaces as a timeout error.
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return timeoutOr(ctx, err)
	}
	defer func() {
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(ctx, tx); err != nil {
		return timeoutOr(ctx, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return timeoutOr(ctx, err)
	}
	return nil
}

func timeoutOr(ctx context.Context, err error) error {
	if dErrors.HasCode(err, dErrors.CodeTimeout) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "collaborator timed out")
	}
	return err
}
