// Package progression moves players along the experience curve and applies
// profession stat gains when the curve crosses a level boundary.
package progression

import (
	"context"
	"fmt"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/logger"
	"github.com/emberworks/ironhold/internal/metrics"
	"github.com/emberworks/ironhold/internal/repository"
	"github.com/emberworks/ironhold/internal/statcalc"
)

// Currency credits reward silver inside the grant transaction.
type Currency interface {
	CreditTx(ctx context.Context, tx repository.Tx, userEmail string, amount int64) (int64, error)
}

// GrantResult reports the outcome of an experience grant.
type GrantResult struct {
	Level        int  `json:"level"`
	Experience   int  `json:"experience"`
	LeveledUp    bool `json:"leveled_up"`
	LevelsGained int  `json:"levels_gained"`
}

// Service defines the interface for progression operations
type Service interface {
	GrantExperience(ctx context.Context, userEmail string, amount int) (*GrantResult, error)
	GrantExperienceAndSilver(ctx context.Context, userEmail string, experience int, silver int64) (*GrantResult, error)
	GetStats(ctx context.Context, userEmail string) (*domain.Stats, error)
}

type service struct {
	repo     repository.Progression
	currency Currency
}

// NewService creates a new progression service
func NewService(repo repository.Progression, currency Currency) Service {
	return &service{repo: repo, currency: currency}
}

// GrantExperience adjusts a player's total experience and reconciles the
// level with the curve. Negative grants level the player down with the exact
// negation of the per-level gains; total experience never drops below zero.
func (s *service) GrantExperience(ctx context.Context, userEmail string, amount int) (*GrantResult, error) {
	log := logger.FromContext(ctx)
	log.Info("GrantExperience called", "user", userEmail, "amount", amount)

	var result *GrantResult
	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		var err error
		result, err = s.grantTx(ctx, tx, userEmail, amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.report(ctx, userEmail, result)
	return result, nil
}

// GrantExperienceAndSilver awards both in one transaction, for gameplay
// collaborators that pay out a reward bundle.
func (s *service) GrantExperienceAndSilver(ctx context.Context, userEmail string, experience int, silver int64) (*GrantResult, error) {
	log := logger.FromContext(ctx)
	log.Info("GrantExperienceAndSilver called", "user", userEmail, "experience", experience, "silver", silver)

	if silver < 0 {
		return nil, fmt.Errorf("%w: silver reward cannot be negative, got %d", domain.ErrInvalidInput, silver)
	}

	var result *GrantResult
	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		var err error
		result, err = s.grantTx(ctx, tx, userEmail, experience)
		if err != nil {
			return err
		}
		if silver > 0 {
			_, err = s.currency.CreditTx(ctx, tx, userEmail, silver)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.report(ctx, userEmail, result)
	return result, nil
}

func (s *service) grantTx(ctx context.Context, tx repository.Tx, userEmail string, amount int) (*GrantResult, error) {
	stats, err := tx.GetStatsForUpdate(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userEmail)
	}

	newExp := stats.Experience + amount
	if newExp < 0 {
		newExp = 0
	}
	newLevel := statcalc.LevelForExperience(newExp)
	diff := newLevel - stats.Level

	if diff != 0 {
		profession, err := tx.GetProfessionForUser(ctx, userEmail)
		if err != nil {
			return nil, err
		}
		if profession == nil {
			return nil, fmt.Errorf("%w: %s has no profession", domain.ErrUserNotFound, userEmail)
		}
		statcalc.LevelUpDelta(profession, diff).Apply(stats)
	}

	stats.Experience = newExp
	stats.Level = newLevel
	if err := tx.UpdateStats(ctx, stats); err != nil {
		return nil, err
	}

	return &GrantResult{
		Level:        newLevel,
		Experience:   newExp,
		LeveledUp:    diff > 0,
		LevelsGained: diff,
	}, nil
}

func (s *service) report(ctx context.Context, userEmail string, result *GrantResult) {
	if result.LevelsGained > 0 {
		metrics.LevelUps.Add(float64(result.LevelsGained))
		logger.FromContext(ctx).Info("Player leveled up",
			"user", userEmail, "level", result.Level, "gained", result.LevelsGained)
	}
}

func (s *service) GetStats(ctx context.Context, userEmail string) (*domain.Stats, error) {
	stats, err := s.repo.GetStats(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	if stats == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userEmail)
	}
	return stats, nil
}
