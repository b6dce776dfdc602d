package repository

import (
	"context"

	"github.com/emberworks/ironhold/internal/domain"
)

// Tx is one serializable unit of work against the ledger store. Every
// composite operation (equip, transfer, purchase, ...) runs its reads and
// writes through a single Tx so the existence/quantity check and the
// mutation can never be split by a concurrent writer.
//
// Lookup methods return nil (not an error) when the row is absent; callers
// decide whether absence is a domain error or a create path.
type Tx interface {
	// Catalog reads (immutable data, read inside the tx for FK safety).
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)

	// Inventory rows.
	GetInventoryItemForUpdate(ctx context.Context, userEmail string, itemID int) (*domain.InventoryItem, error)
	InsertInventoryItem(ctx context.Context, userEmail string, itemID, stack int) (*domain.InventoryItem, error)
	UpdateInventoryStack(ctx context.Context, userEmail string, itemID, stack int) (*domain.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, userEmail string, itemID int) error

	// Equipped rows.
	GetEquippedItems(ctx context.Context, userEmail string) ([]domain.EquippedItem, error)
	GetEquippedItem(ctx context.Context, userEmail string, itemID int) (*domain.EquippedItem, error)
	InsertEquippedItem(ctx context.Context, userEmail string, itemID int, category domain.Category) error
	DeleteEquippedItem(ctx context.Context, userEmail string, itemID int) error

	// Stat sheets.
	GetStatsForUpdate(ctx context.Context, userEmail string) (*domain.Stats, error)
	UpdateStats(ctx context.Context, stats *domain.Stats) error

	// Users and silver balances.
	GetUserForUpdate(ctx context.Context, userEmail string) (*domain.User, error)
	UpdateSilver(ctx context.Context, userEmail string, silver int64) error
	GetProfessionForUser(ctx context.Context, userEmail string) (*domain.Profession, error)

	// Market listings.
	GetListingForUpdate(ctx context.Context, listingID int64) (*domain.MarketListing, error)
	InsertListing(ctx context.Context, listing *domain.MarketListing) (*domain.MarketListing, error)
	UpdateListingStack(ctx context.Context, listingID int64, stack int) error
	CloseListing(ctx context.Context, listingID int64, status domain.ListingStatus) error

	// Payment dedup ledger. Reports false when the event's provider
	// transaction id was already recorded.
	InsertPaymentEvent(ctx context.Context, event *domain.PaymentEvent) (bool, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxBeginner opens serializable transactions against the ledger store.
type TxBeginner interface {
	BeginTx(ctx context.Context) (Tx, error)
}
