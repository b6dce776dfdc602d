package repository

import (
	"context"
	"errors"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/logger"
)

// MaxTxAttempts bounds serialization-failure retries in WithTx.
const MaxTxAttempts = 3

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rolling back after a successful commit reports a closed tx; that
		// is the normal path, not a failure worth logging.
		if err.Error() != domain.ErrMsgTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}

// WithTx runs fn inside a serializable transaction, committing on success.
// When the store aborts the transaction with a serialization conflict
// (domain.ErrTxConflict) the whole function is retried against fresh state,
// up to MaxTxAttempts times. Any other error rolls back and returns.
func WithTx(ctx context.Context, store TxBeginner, fn func(tx Tx) error) error {
	var err error
	for attempt := 1; attempt <= MaxTxAttempts; attempt++ {
		err = runInTx(ctx, store, fn)
		if err == nil || !errors.Is(err, domain.ErrTxConflict) {
			return err
		}
		logger.FromContext(ctx).Warn("Transaction conflict, retrying", "attempt", attempt)
	}
	return err
}

func runInTx(ctx context.Context, store TxBeginner, fn func(tx Tx) error) error {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
