package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/emberworks/ironhold/internal/domain"
)

// ledgerTx implements repository.Tx over a serializable pgx transaction.
type ledgerTx struct {
	tx pgx.Tx
}

// Commit commits the transaction. Serialization failures surface here as
// well as on individual statements, so commit errors go through mapError too.
func (t *ledgerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return mapError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back the transaction.
func (t *ledgerTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return errors.New(domain.ErrMsgTxClosed)
		}
		return err
	}
	return nil
}

// GetItem reads a catalog item inside the transaction.
func (t *ledgerTx) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE item_id = $1"
	return scanItem(t.tx.QueryRow(ctx, query, itemID))
}

// mapError classifies postgres errors into domain sentinels:
// serialization/deadlock aborts become ErrTxConflict (retryable), foreign
// key violations become ErrUnknownReference (dangling item/player id).
func mapError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return fmt.Errorf("%s: %w", msg, domain.ErrTxConflict)
		case "23503":
			return fmt.Errorf("%s: %w", msg, domain.ErrUnknownReference)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
