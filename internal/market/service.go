// Package market is the player-to-player exchange. Listed stacks are held in
// escrow on the listing row itself: they leave the seller's inventory when
// the listing is created and only ever move to a buyer or back to the seller.
package market

import (
	"context"
	"fmt"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/logger"
	"github.com/emberworks/ironhold/internal/metrics"
	"github.com/emberworks/ironhold/internal/repository"
)

// PageSize is the fixed number of listings per browse page.
const PageSize = 10

// Inventory is the stack surface the exchange composes with for escrow and
// delivery.
type Inventory interface {
	AddItemTx(ctx context.Context, tx repository.Tx, userEmail string, itemID, stack int) (*domain.InventoryItem, error)
	RemoveItemTx(ctx context.Context, tx repository.Tx, userEmail string, itemID, stack int) error
}

// Currency moves silver inside the settlement transaction.
type Currency interface {
	TransferTx(ctx context.Context, tx repository.Tx, fromEmail, toEmail string, amount int64) error
}

// PurchaseResult reports a settled purchase.
type PurchaseResult struct {
	ListingID  int64 `json:"listing_id"`
	ItemID     int   `json:"item_id"`
	Stack      int   `json:"stack"`
	TotalPrice int64 `json:"total_price"`
	Remaining  int   `json:"remaining"`
}

// Service defines the interface for market operations
type Service interface {
	List(ctx context.Context, sellerEmail string, itemID int, price int64, stack int) (*domain.MarketListing, error)
	Purchase(ctx context.Context, buyerEmail string, listingID int64, stack int) (*PurchaseResult, error)
	Cancel(ctx context.Context, sellerEmail string, listingID int64) error
	FindAll(ctx context.Context, page int, category domain.Category) ([]domain.MarketListing, error)
}

type service struct {
	repo      repository.Market
	inventory Inventory
	currency  Currency
}

// NewService creates a new market service
func NewService(repo repository.Market, inventory Inventory, currency Currency) Service {
	return &service{repo: repo, inventory: inventory, currency: currency}
}

// List creates a listing, escrowing the offered stack. Escrow and listing
// creation share one transaction: if the seller cannot cover the stack, no
// listing row exists afterwards.
func (s *service) List(ctx context.Context, sellerEmail string, itemID int, price int64, stack int) (*domain.MarketListing, error) {
	log := logger.FromContext(ctx)
	log.Info("List called", "seller", sellerEmail, "itemID", itemID, "price", price, "stack", stack)

	if price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive, got %d", domain.ErrInvalidInput, price)
	}
	if stack <= 0 {
		return nil, fmt.Errorf("%w: stack must be positive, got %d", domain.ErrInvalidInput, stack)
	}

	var created *domain.MarketListing
	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		item, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: id %d", domain.ErrItemNotFound, itemID)
		}

		if err := s.inventory.RemoveItemTx(ctx, tx, sellerEmail, itemID, stack); err != nil {
			return err
		}

		created, err = tx.InsertListing(ctx, &domain.MarketListing{
			SellerEmail: sellerEmail,
			ItemID:      itemID,
			Price:       price,
			Stack:       stack,
			Status:      domain.ListingActive,
		})
		if err != nil {
			return err
		}
		created.Item = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ListingsCreated.Inc()
	log.Info("Listing created", "listingID", created.ID, "seller", sellerEmail)
	return created, nil
}

// Purchase settles part or all of a listing. Silver moves first; delivery
// and the stack decrement follow in the same transaction, so a buyer who
// cannot pay never receives items and the escrowed stack only shrinks when
// the seller has been paid.
func (s *service) Purchase(ctx context.Context, buyerEmail string, listingID int64, stack int) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Purchase called", "buyer", buyerEmail, "listingID", listingID, "stack", stack)

	if stack <= 0 {
		return nil, fmt.Errorf("%w: stack must be positive, got %d", domain.ErrInvalidInput, stack)
	}

	var result *PurchaseResult
	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		listing, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if listing == nil || listing.Status != domain.ListingActive {
			return fmt.Errorf("%w: id %d", domain.ErrListingNotFound, listingID)
		}
		if listing.SellerEmail == buyerEmail {
			return fmt.Errorf("%w: cannot purchase own listing", domain.ErrInvalidInput)
		}
		if stack > listing.Stack {
			return fmt.Errorf("%w: listing has %d, requested %d", domain.ErrInsufficientStack, listing.Stack, stack)
		}

		cost := listing.Price * int64(stack)
		if err := s.currency.TransferTx(ctx, tx, buyerEmail, listing.SellerEmail, cost); err != nil {
			return err
		}
		if _, err := s.inventory.AddItemTx(ctx, tx, buyerEmail, listing.ItemID, stack); err != nil {
			return err
		}

		remaining := listing.Stack - stack
		if remaining == 0 {
			if err := tx.CloseListing(ctx, listingID, domain.ListingSold); err != nil {
				return err
			}
		} else {
			if err := tx.UpdateListingStack(ctx, listingID, remaining); err != nil {
				return err
			}
		}

		result = &PurchaseResult{
			ListingID:  listingID,
			ItemID:     listing.ItemID,
			Stack:      stack,
			TotalPrice: cost,
			Remaining:  remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PurchasesSettled.Inc()
	metrics.SilverTransferred.Add(float64(result.TotalPrice))
	log.Info("Purchase settled", "buyer", buyerEmail, "listingID", listingID, "stack", result.Stack, "total", result.TotalPrice)
	return result, nil
}

// Cancel closes a listing and returns the escrowed stack to its seller.
func (s *service) Cancel(ctx context.Context, sellerEmail string, listingID int64) error {
	log := logger.FromContext(ctx)
	log.Info("Cancel called", "seller", sellerEmail, "listingID", listingID)

	return repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		listing, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if listing == nil || listing.Status != domain.ListingActive {
			return fmt.Errorf("%w: id %d", domain.ErrListingNotFound, listingID)
		}
		if listing.SellerEmail != sellerEmail {
			return fmt.Errorf("%w: listing %d", domain.ErrNotOwner, listingID)
		}

		if _, err := s.inventory.AddItemTx(ctx, tx, sellerEmail, listing.ItemID, listing.Stack); err != nil {
			return err
		}
		return tx.CloseListing(ctx, listingID, domain.ListingCancelled)
	})
}

// FindAll returns one page of active listings, newest first, optionally
// filtered by item category. Pages start at 1.
func (s *service) FindAll(ctx context.Context, page int, category domain.Category) ([]domain.MarketListing, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, category)
	}
	if page < 1 {
		page = 1
	}

	listings, err := s.repo.FindListings(ctx, category, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to find listings: %w", err)
	}
	return listings, nil
}
