// Package inventory manages player item stacks. Stacks are stored one row
// per (player, item); a stack that reaches zero is deleted, so holding an
// item and having a row are the same condition.
package inventory

import (
	"context"
	"fmt"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/logger"
	"github.com/emberworks/ironhold/internal/metrics"
	"github.com/emberworks/ironhold/internal/repository"
)

// Service defines the interface for inventory operations. The ...Tx variants
// run against a caller-owned transaction so composite operations (equip,
// market escrow, purchase delivery) can fold stack changes into their own
// unit of work; the plain variants open and commit their own.
type Service interface {
	AddItem(ctx context.Context, userEmail string, itemID, stack int) (*domain.InventoryItem, error)
	RemoveItem(ctx context.Context, userEmail string, itemID, stack int) error
	TransferItem(ctx context.Context, fromEmail, toEmail string, itemID, stack int) error
	GetInventory(ctx context.Context, userEmail string) ([]domain.InventoryItem, error)

	AddItemTx(ctx context.Context, tx repository.Tx, userEmail string, itemID, stack int) (*domain.InventoryItem, error)
	RemoveItemTx(ctx context.Context, tx repository.Tx, userEmail string, itemID, stack int) error
}

type service struct {
	repo repository.Inventory
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory) Service {
	return &service{repo: repo}
}

func (s *service) AddItem(ctx context.Context, userEmail string, itemID, stack int) (*domain.InventoryItem, error) {
	log := logger.FromContext(ctx)
	log.Info("AddItem called", "user", userEmail, "itemID", itemID, "stack", stack)

	var out *domain.InventoryItem
	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		var err error
		out, err = s.AddItemTx(ctx, tx, userEmail, itemID, stack)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddItemTx grows a stack, creating the row when the player holds none.
// An unknown item or player surfaces as domain.ErrUnknownReference.
func (s *service) AddItemTx(ctx context.Context, tx repository.Tx, userEmail string, itemID, stack int) (*domain.InventoryItem, error) {
	if stack <= 0 {
		return nil, fmt.Errorf("%w: stack must be positive, got %d", domain.ErrInvalidInput, stack)
	}

	existing, err := tx.GetInventoryItemForUpdate(ctx, userEmail, itemID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return tx.InsertInventoryItem(ctx, userEmail, itemID, stack)
	}
	return tx.UpdateInventoryStack(ctx, userEmail, itemID, existing.Stack+stack)
}

func (s *service) RemoveItem(ctx context.Context, userEmail string, itemID, stack int) error {
	log := logger.FromContext(ctx)
	log.Info("RemoveItem called", "user", userEmail, "itemID", itemID, "stack", stack)

	return repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		return s.RemoveItemTx(ctx, tx, userEmail, itemID, stack)
	})
}

// RemoveItemTx shrinks a stack, deleting the row when it drains to zero.
func (s *service) RemoveItemTx(ctx context.Context, tx repository.Tx, userEmail string, itemID, stack int) error {
	if stack <= 0 {
		return fmt.Errorf("%w: stack must be positive, got %d", domain.ErrInvalidInput, stack)
	}

	existing, err := tx.GetInventoryItemForUpdate(ctx, userEmail, itemID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: item %d", domain.ErrItemNotHeld, itemID)
	}
	if existing.Stack < stack {
		return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientStack, existing.Stack, stack)
	}

	if existing.Stack == stack {
		return tx.DeleteInventoryItem(ctx, userEmail, itemID)
	}
	_, err = tx.UpdateInventoryStack(ctx, userEmail, itemID, existing.Stack-stack)
	return err
}

// TransferItem moves a stack between players. Removal and delivery share one
// transaction: an unknown recipient rolls the removal back too.
func (s *service) TransferItem(ctx context.Context, fromEmail, toEmail string, itemID, stack int) error {
	log := logger.FromContext(ctx)
	log.Info("TransferItem called", "from", fromEmail, "to", toEmail, "itemID", itemID, "stack", stack)

	if fromEmail == toEmail {
		return fmt.Errorf("%w: cannot transfer to self", domain.ErrInvalidInput)
	}

	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		if err := s.RemoveItemTx(ctx, tx, fromEmail, itemID, stack); err != nil {
			return err
		}
		_, err := s.AddItemTx(ctx, tx, toEmail, itemID, stack)
		return err
	})
	if err != nil {
		return err
	}

	metrics.ItemsTransferred.Add(float64(stack))
	log.Info("Item transferred", "from", fromEmail, "to", toEmail, "itemID", itemID, "stack", stack)
	return nil
}

func (s *service) GetInventory(ctx context.Context, userEmail string) ([]domain.InventoryItem, error) {
	items, err := s.repo.GetInventory(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return items, nil
}
