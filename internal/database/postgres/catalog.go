package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emberworks/ironhold/internal/domain"
)

const itemColumns = "item_id, name, category, health, mana, attack, strength, agility, intellect"

func scanItem(row pgx.Row) (*domain.Item, error) {
	var i domain.Item
	err := row.Scan(&i.ID, &i.Name, &i.Category, &i.Health, &i.Mana,
		&i.Attack, &i.Strength, &i.Agility, &i.Intellect)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	return &i, nil
}

// GetItemByID retrieves a catalog item by id.
func (s *Store) GetItemByID(ctx context.Context, itemID int) (*domain.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE item_id = $1"
	return scanItem(s.db.QueryRow(ctx, query, itemID))
}

// GetItemByName retrieves a catalog item by its unique name.
func (s *Store) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE name = $1"
	return scanItem(s.db.QueryRow(ctx, query, name))
}

// CreateItem inserts a new catalog item (content authoring path).
func (s *Store) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	query := `
		INSERT INTO items (name, category, health, mana, attack, strength, agility, intellect)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING item_id
	`
	created := *item
	err := s.db.QueryRow(ctx, query,
		item.Name, item.Category, item.Health, item.Mana,
		item.Attack, item.Strength, item.Agility, item.Intellect).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return &created, nil
}

// GetProfessionByID retrieves a profession by id.
func (s *Store) GetProfessionByID(ctx context.Context, professionID int) (*domain.Profession, error) {
	query := `
		SELECT profession_id, name, health, mana, strength, agility, intellect
		FROM professions
		WHERE profession_id = $1
	`
	var p domain.Profession
	err := s.db.QueryRow(ctx, query, professionID).Scan(
		&p.ID, &p.Name, &p.Health, &p.Mana, &p.Strength, &p.Agility, &p.Intellect)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profession: %w", err)
	}
	return &p, nil
}

// ListProfessions returns every profession.
func (s *Store) ListProfessions(ctx context.Context) ([]domain.Profession, error) {
	query := `
		SELECT profession_id, name, health, mana, strength, agility, intellect
		FROM professions
		ORDER BY profession_id
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query professions: %w", err)
	}
	defer rows.Close()

	var out []domain.Profession
	for rows.Next() {
		var p domain.Profession
		if err := rows.Scan(&p.ID, &p.Name, &p.Health, &p.Mana, &p.Strength, &p.Agility, &p.Intellect); err != nil {
			return nil, fmt.Errorf("failed to scan profession: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
