// Package equipment manages worn items and consumable use. Equipping moves
// one unit out of the inventory into an equipment slot and folds the item's
// stat contribution into the player's sheet; unequipping is the exact
// inverse, with current pools clamped back under their maxima.
package equipment

import (
	"context"
	"fmt"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/logger"
	"github.com/emberworks/ironhold/internal/metrics"
	"github.com/emberworks/ironhold/internal/repository"
	"github.com/emberworks/ironhold/internal/statcalc"
)

// Inventory is the stack surface this service composes with inside its own
// transactions.
type Inventory interface {
	AddItemTx(ctx context.Context, tx repository.Tx, userEmail string, itemID, stack int) (*domain.InventoryItem, error)
	RemoveItemTx(ctx context.Context, tx repository.Tx, userEmail string, itemID, stack int) error
}

// Service defines the interface for equipment operations
type Service interface {
	Equip(ctx context.Context, userEmail string, itemID int) error
	Unequip(ctx context.Context, userEmail string, itemID int) error
	Consume(ctx context.Context, userEmail string, itemID int) (bool, error)
	GetEquipment(ctx context.Context, userEmail string) ([]domain.EquippedItem, error)
}

type service struct {
	repo      repository.Equipment
	inventory Inventory
}

// NewService creates a new equipment service
func NewService(repo repository.Equipment, inventory Inventory) Service {
	return &service{repo: repo, inventory: inventory}
}

// Equip wears an item. One unit leaves the inventory, an equipped row is
// created and the item's stat delta is applied, all in one transaction.
// Each category holds at most one item at a time.
func (s *service) Equip(ctx context.Context, userEmail string, itemID int) error {
	log := logger.FromContext(ctx)
	log.Info("Equip called", "user", userEmail, "itemID", itemID)

	return repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		item, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: id %d", domain.ErrItemNotFound, itemID)
		}
		if !item.Category.Equippable() {
			return fmt.Errorf("%w: %s", domain.ErrNotEquippable, item.Name)
		}

		equipped, err := tx.GetEquippedItems(ctx, userEmail)
		if err != nil {
			return err
		}
		for _, eq := range equipped {
			if eq.Category == item.Category {
				return fmt.Errorf("%w: %s", domain.ErrCategoryConflict, item.Category)
			}
		}

		if err := s.inventory.RemoveItemTx(ctx, tx, userEmail, itemID, 1); err != nil {
			return err
		}
		if err := tx.InsertEquippedItem(ctx, userEmail, itemID, item.Category); err != nil {
			return err
		}

		stats, err := tx.GetStatsForUpdate(ctx, userEmail)
		if err != nil {
			return err
		}
		if stats == nil {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userEmail)
		}
		statcalc.ItemDelta(item).Apply(stats)
		return tx.UpdateStats(ctx, stats)
	})
}

// Unequip takes an item off, returning one unit to the inventory and
// reverting the stat delta. Unequipping an item that is not worn is a no-op.
func (s *service) Unequip(ctx context.Context, userEmail string, itemID int) error {
	log := logger.FromContext(ctx)
	log.Info("Unequip called", "user", userEmail, "itemID", itemID)

	return repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		eq, err := tx.GetEquippedItem(ctx, userEmail, itemID)
		if err != nil {
			return err
		}
		if eq == nil {
			log.Info("Item not equipped, nothing to do", "user", userEmail, "itemID", itemID)
			return nil
		}

		if err := tx.DeleteEquippedItem(ctx, userEmail, itemID); err != nil {
			return err
		}
		if _, err := s.inventory.AddItemTx(ctx, tx, userEmail, itemID, 1); err != nil {
			return err
		}

		stats, err := tx.GetStatsForUpdate(ctx, userEmail)
		if err != nil {
			return err
		}
		if stats == nil {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userEmail)
		}
		statcalc.ItemDelta(eq.Item).Negate().Apply(stats)
		return tx.UpdateStats(ctx, stats)
	})
}

// Consume uses one unit of a consumable, restoring current health/mana up to
// their maxima. Gameplay code triggers consumption speculatively, so a
// missing or non-consumable item reports false rather than an error.
func (s *service) Consume(ctx context.Context, userEmail string, itemID int) (bool, error) {
	log := logger.FromContext(ctx)
	log.Info("Consume called", "user", userEmail, "itemID", itemID)

	consumed := false
	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		consumed = false

		item, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.Category != domain.CategoryConsumable {
			log.Info("Consume skipped, not a held consumable", "user", userEmail, "itemID", itemID)
			return nil
		}

		held, err := tx.GetInventoryItemForUpdate(ctx, userEmail, itemID)
		if err != nil {
			return err
		}
		if held == nil {
			log.Info("Consume skipped, item not held", "user", userEmail, "itemID", itemID)
			return nil
		}

		stats, err := tx.GetStatsForUpdate(ctx, userEmail)
		if err != nil {
			return err
		}
		if stats == nil {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userEmail)
		}

		// Restore clamps to the max pools; the unit is spent even when
		// there was nothing left to heal.
		statcalc.Restore(stats, item)

		if err := s.inventory.RemoveItemTx(ctx, tx, userEmail, itemID, 1); err != nil {
			return err
		}
		if err := tx.UpdateStats(ctx, stats); err != nil {
			return err
		}
		consumed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if consumed {
		metrics.ItemsConsumed.Inc()
	}
	return consumed, nil
}

func (s *service) GetEquipment(ctx context.Context, userEmail string) ([]domain.EquippedItem, error) {
	equipped, err := s.repo.GetEquipment(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return equipped, nil
}
