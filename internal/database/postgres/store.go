package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/repository"
)

// Store is the PostgreSQL ledger store. One type backs every repository
// interface: the managers each see only the narrow slice they depend on.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store backed by the given pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// BeginTx starts a serializable transaction. Serializable isolation is what
// turns concurrent read-then-write races into retryable conflicts instead of
// lost updates.
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &ledgerTx{tx: tx}, nil
}

// GetUser fetches a user by email outside any transaction.
func (s *Store) GetUser(ctx context.Context, userEmail string) (*domain.User, error) {
	query := `
		SELECT email, username, profession_id, silver
		FROM users
		WHERE email = $1
	`
	var u domain.User
	err := s.db.QueryRow(ctx, query, userEmail).Scan(&u.Email, &u.Username, &u.ProfessionID, &u.Silver)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetStats fetches a player's stat sheet outside any transaction.
func (s *Store) GetStats(ctx context.Context, userEmail string) (*domain.Stats, error) {
	query := `
		SELECT user_email, level, experience, health, max_health, mana, max_mana,
		       attack, strength, agility, intellect
		FROM stats
		WHERE user_email = $1
	`
	var st domain.Stats
	err := s.db.QueryRow(ctx, query, userEmail).Scan(
		&st.UserEmail, &st.Level, &st.Experience, &st.Health, &st.MaxHealth,
		&st.Mana, &st.MaxMana, &st.Attack, &st.Strength, &st.Agility, &st.Intellect)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &st, nil
}

// GetInventory returns every inventory row for a player joined with its
// catalog item.
func (s *Store) GetInventory(ctx context.Context, userEmail string) ([]domain.InventoryItem, error) {
	query := `
		SELECT inv.user_email, inv.item_id, inv.stack,
		       i.item_id, i.name, i.category, i.health, i.mana, i.attack,
		       i.strength, i.agility, i.intellect
		FROM inventory_items inv
		JOIN items i ON i.item_id = inv.item_id
		WHERE inv.user_email = $1
		ORDER BY i.name
	`
	rows, err := s.db.Query(ctx, query, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var out []domain.InventoryItem
	for rows.Next() {
		var inv domain.InventoryItem
		var item domain.Item
		if err := rows.Scan(
			&inv.UserEmail, &inv.ItemID, &inv.Stack,
			&item.ID, &item.Name, &item.Category, &item.Health, &item.Mana,
			&item.Attack, &item.Strength, &item.Agility, &item.Intellect,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		inv.Item = &item
		out = append(out, inv)
	}
	return out, rows.Err()
}

// GetEquipment returns every equipped row for a player joined with its
// catalog item.
func (s *Store) GetEquipment(ctx context.Context, userEmail string) ([]domain.EquippedItem, error) {
	query := `
		SELECT eq.user_email, eq.item_id, eq.category,
		       i.item_id, i.name, i.category, i.health, i.mana, i.attack,
		       i.strength, i.agility, i.intellect
		FROM equipped_items eq
		JOIN items i ON i.item_id = eq.item_id
		WHERE eq.user_email = $1
		ORDER BY eq.category
	`
	rows, err := s.db.Query(ctx, query, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer rows.Close()

	var out []domain.EquippedItem
	for rows.Next() {
		var eq domain.EquippedItem
		var item domain.Item
		if err := rows.Scan(
			&eq.UserEmail, &eq.ItemID, &eq.Category,
			&item.ID, &item.Name, &item.Category, &item.Health, &item.Mana,
			&item.Attack, &item.Strength, &item.Agility, &item.Intellect,
		); err != nil {
			return nil, fmt.Errorf("failed to scan equipment row: %w", err)
		}
		eq.Item = &item
		out = append(out, eq)
	}
	return out, rows.Err()
}

// FindListings returns a page of active listings, newest first, optionally
// filtered by item category. Snapshot read: no transaction needed.
func (s *Store) FindListings(ctx context.Context, category domain.Category, limit, offset int) ([]domain.MarketListing, error) {
	query := `
		SELECT l.listing_id, l.seller_email, l.item_id, l.price, l.stack, l.status, l.created_at,
		       i.item_id, i.name, i.category, i.health, i.mana, i.attack,
		       i.strength, i.agility, i.intellect
		FROM market_listings l
		JOIN items i ON i.item_id = l.item_id
		WHERE l.status = 'active' AND ($1 = '' OR i.category = $1)
		ORDER BY l.created_at DESC, l.listing_id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.Query(ctx, query, string(category), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var out []domain.MarketListing
	for rows.Next() {
		var l domain.MarketListing
		var item domain.Item
		if err := rows.Scan(
			&l.ID, &l.SellerEmail, &l.ItemID, &l.Price, &l.Stack, &l.Status, &l.CreatedAt,
			&item.ID, &item.Name, &item.Category, &item.Health, &item.Mana,
			&item.Attack, &item.Strength, &item.Agility, &item.Intellect,
		); err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		l.Item = &item
		out = append(out, l)
	}
	return out, rows.Err()
}
