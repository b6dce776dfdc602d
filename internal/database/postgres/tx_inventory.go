package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emberworks/ironhold/internal/domain"
)

// GetInventoryItemForUpdate loads one inventory row with a row lock, or nil
// when the player does not hold the item.
func (t *ledgerTx) GetInventoryItemForUpdate(ctx context.Context, userEmail string, itemID int) (*domain.InventoryItem, error) {
	query := `
		SELECT user_email, item_id, stack
		FROM inventory_items
		WHERE user_email = $1 AND item_id = $2
		FOR UPDATE
	`
	var inv domain.InventoryItem
	err := t.tx.QueryRow(ctx, query, userEmail, itemID).Scan(&inv.UserEmail, &inv.ItemID, &inv.Stack)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("failed to get inventory item", err)
	}
	return &inv, nil
}

// InsertInventoryItem creates a new stack. A foreign key violation (unknown
// item or player) comes back as domain.ErrUnknownReference.
func (t *ledgerTx) InsertInventoryItem(ctx context.Context, userEmail string, itemID, stack int) (*domain.InventoryItem, error) {
	query := `
		INSERT INTO inventory_items (user_email, item_id, stack)
		VALUES ($1, $2, $3)
		RETURNING user_email, item_id, stack
	`
	var inv domain.InventoryItem
	err := t.tx.QueryRow(ctx, query, userEmail, itemID, stack).Scan(&inv.UserEmail, &inv.ItemID, &inv.Stack)
	if err != nil {
		return nil, mapError("failed to insert inventory item", err)
	}
	return &inv, nil
}

// UpdateInventoryStack sets the stack of an existing row.
func (t *ledgerTx) UpdateInventoryStack(ctx context.Context, userEmail string, itemID, stack int) (*domain.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET stack = $3
		WHERE user_email = $1 AND item_id = $2
		RETURNING user_email, item_id, stack
	`
	var inv domain.InventoryItem
	err := t.tx.QueryRow(ctx, query, userEmail, itemID, stack).Scan(&inv.UserEmail, &inv.ItemID, &inv.Stack)
	if err != nil {
		return nil, mapError("failed to update inventory stack", err)
	}
	return &inv, nil
}

// DeleteInventoryItem removes a drained stack row.
func (t *ledgerTx) DeleteInventoryItem(ctx context.Context, userEmail string, itemID int) error {
	tag, err := t.tx.Exec(ctx,
		"DELETE FROM inventory_items WHERE user_email = $1 AND item_id = $2",
		userEmail, itemID)
	if err != nil {
		return mapError("failed to delete inventory item", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete inventory item: %w", domain.ErrItemNotHeld)
	}
	return nil
}
