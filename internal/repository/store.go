package repository

import (
	"context"

	"github.com/emberworks/ironhold/internal/domain"
)

// Catalog is the read-mostly item/profession reference store. Items and
// professions are authored content: immutable during a game session.
type Catalog interface {
	GetItemByID(ctx context.Context, itemID int) (*domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
	CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetProfessionByID(ctx context.Context, professionID int) (*domain.Profession, error)
	ListProfessions(ctx context.Context) ([]domain.Profession, error)
}

// Inventory is the store surface the inventory manager needs.
type Inventory interface {
	TxBeginner
	GetInventory(ctx context.Context, userEmail string) ([]domain.InventoryItem, error)
}

// Equipment is the store surface the equipment manager needs.
type Equipment interface {
	TxBeginner
	GetEquipment(ctx context.Context, userEmail string) ([]domain.EquippedItem, error)
}

// Market is the store surface the market exchange needs. FindListings is a
// consistent snapshot read of active listings, newest first.
type Market interface {
	TxBeginner
	FindListings(ctx context.Context, category domain.Category, limit, offset int) ([]domain.MarketListing, error)
}

// Currency is the store surface the currency ledger needs.
type Currency interface {
	TxBeginner
	GetUser(ctx context.Context, userEmail string) (*domain.User, error)
}

// Progression is the store surface the progression manager needs.
type Progression interface {
	TxBeginner
	GetStats(ctx context.Context, userEmail string) (*domain.Stats, error)
}
