package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/emberworks/ironhold/internal/domain"
)

// GetStatsForUpdate loads a stat sheet with a row lock, or nil when the
// player has no sheet.
func (t *ledgerTx) GetStatsForUpdate(ctx context.Context, userEmail string) (*domain.Stats, error) {
	query := `
		SELECT user_email, level, experience, health, max_health, mana, max_mana,
		       attack, strength, agility, intellect
		FROM stats
		WHERE user_email = $1
		FOR UPDATE
	`
	var st domain.Stats
	err := t.tx.QueryRow(ctx, query, userEmail).Scan(
		&st.UserEmail, &st.Level, &st.Experience, &st.Health, &st.MaxHealth,
		&st.Mana, &st.MaxMana, &st.Attack, &st.Strength, &st.Agility, &st.Intellect)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("failed to get stats", err)
	}
	return &st, nil
}

// UpdateStats writes back a full stat sheet.
func (t *ledgerTx) UpdateStats(ctx context.Context, stats *domain.Stats) error {
	query := `
		UPDATE stats
		SET level = $2, experience = $3, health = $4, max_health = $5,
		    mana = $6, max_mana = $7, attack = $8, strength = $9,
		    agility = $10, intellect = $11
		WHERE user_email = $1
	`
	_, err := t.tx.Exec(ctx, query,
		stats.UserEmail, stats.Level, stats.Experience, stats.Health, stats.MaxHealth,
		stats.Mana, stats.MaxMana, stats.Attack, stats.Strength, stats.Agility, stats.Intellect)
	if err != nil {
		return mapError("failed to update stats", err)
	}
	return nil
}

// GetUserForUpdate loads a user row with a row lock, or nil when absent.
func (t *ledgerTx) GetUserForUpdate(ctx context.Context, userEmail string) (*domain.User, error) {
	query := `
		SELECT email, username, profession_id, silver
		FROM users
		WHERE email = $1
		FOR UPDATE
	`
	var u domain.User
	err := t.tx.QueryRow(ctx, query, userEmail).Scan(&u.Email, &u.Username, &u.ProfessionID, &u.Silver)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("failed to get user", err)
	}
	return &u, nil
}

// UpdateSilver sets a user's silver balance.
func (t *ledgerTx) UpdateSilver(ctx context.Context, userEmail string, silver int64) error {
	_, err := t.tx.Exec(ctx,
		"UPDATE users SET silver = $2, updated_at = NOW() WHERE email = $1",
		userEmail, silver)
	if err != nil {
		return mapError("failed to update silver", err)
	}
	return nil
}

// GetProfessionForUser loads the profession reference row for a player.
func (t *ledgerTx) GetProfessionForUser(ctx context.Context, userEmail string) (*domain.Profession, error) {
	query := `
		SELECT p.profession_id, p.name, p.health, p.mana, p.strength, p.agility, p.intellect
		FROM professions p
		JOIN users u ON u.profession_id = p.profession_id
		WHERE u.email = $1
	`
	var p domain.Profession
	err := t.tx.QueryRow(ctx, query, userEmail).Scan(
		&p.ID, &p.Name, &p.Health, &p.Mana, &p.Strength, &p.Agility, &p.Intellect)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("failed to get profession", err)
	}
	return &p, nil
}
