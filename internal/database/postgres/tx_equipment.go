package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emberworks/ironhold/internal/domain"
)

// GetEquippedItems loads every equipped row for a player inside the tx.
func (t *ledgerTx) GetEquippedItems(ctx context.Context, userEmail string) ([]domain.EquippedItem, error) {
	query := `
		SELECT user_email, item_id, category
		FROM equipped_items
		WHERE user_email = $1
		FOR UPDATE
	`
	rows, err := t.tx.Query(ctx, query, userEmail)
	if err != nil {
		return nil, mapError("failed to query equipped items", err)
	}
	defer rows.Close()

	var out []domain.EquippedItem
	for rows.Next() {
		var eq domain.EquippedItem
		if err := rows.Scan(&eq.UserEmail, &eq.ItemID, &eq.Category); err != nil {
			return nil, fmt.Errorf("failed to scan equipped item: %w", err)
		}
		out = append(out, eq)
	}
	return out, rows.Err()
}

// GetEquippedItem loads one equipped row joined with its catalog item, or
// nil when the item is not equipped.
func (t *ledgerTx) GetEquippedItem(ctx context.Context, userEmail string, itemID int) (*domain.EquippedItem, error) {
	query := `
		SELECT eq.user_email, eq.item_id, eq.category,
		       i.item_id, i.name, i.category, i.health, i.mana, i.attack,
		       i.strength, i.agility, i.intellect
		FROM equipped_items eq
		JOIN items i ON i.item_id = eq.item_id
		WHERE eq.user_email = $1 AND eq.item_id = $2
		FOR UPDATE OF eq
	`
	var eq domain.EquippedItem
	var item domain.Item
	err := t.tx.QueryRow(ctx, query, userEmail, itemID).Scan(
		&eq.UserEmail, &eq.ItemID, &eq.Category,
		&item.ID, &item.Name, &item.Category, &item.Health, &item.Mana,
		&item.Attack, &item.Strength, &item.Agility, &item.Intellect)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("failed to get equipped item", err)
	}
	eq.Item = &item
	return &eq, nil
}

// InsertEquippedItem creates an equipped row. The unique (player, category)
// constraint backs the service-level exclusivity check.
func (t *ledgerTx) InsertEquippedItem(ctx context.Context, userEmail string, itemID int, category domain.Category) error {
	_, err := t.tx.Exec(ctx,
		"INSERT INTO equipped_items (user_email, item_id, category) VALUES ($1, $2, $3)",
		userEmail, itemID, category)
	if err != nil {
		return mapError("failed to insert equipped item", err)
	}
	return nil
}

// DeleteEquippedItem removes an equipped row.
func (t *ledgerTx) DeleteEquippedItem(ctx context.Context, userEmail string, itemID int) error {
	_, err := t.tx.Exec(ctx,
		"DELETE FROM equipped_items WHERE user_email = $1 AND item_id = $2",
		userEmail, itemID)
	if err != nil {
		return mapError("failed to delete equipped item", err)
	}
	return nil
}
