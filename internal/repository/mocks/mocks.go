// Package mocks holds testify doubles for the repository interfaces, shared
// by the service test suites.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/repository"
)

// Store implements every repository store interface for testing
type Store struct {
	mock.Mock
}

func (m *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}

func (m *Store) GetUser(ctx context.Context, userEmail string) (*domain.User, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *Store) GetStats(ctx context.Context, userEmail string) (*domain.Stats, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *Store) GetInventory(ctx context.Context, userEmail string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *Store) GetEquipment(ctx context.Context, userEmail string) ([]domain.EquippedItem, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EquippedItem), args.Error(1)
}

func (m *Store) FindListings(ctx context.Context, category domain.Category, limit, offset int) ([]domain.MarketListing, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketListing), args.Error(1)
}

func (m *Store) GetItemByID(ctx context.Context, itemID int) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *Store) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *Store) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *Store) GetProfessionByID(ctx context.Context, professionID int) (*domain.Profession, error) {
	args := m.Called(ctx, professionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profession), args.Error(1)
}

func (m *Store) ListProfessions(ctx context.Context) ([]domain.Profession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profession), args.Error(1)
}

// Tx implements repository.Tx for testing
type Tx struct {
	mock.Mock
}

func (m *Tx) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *Tx) GetInventoryItemForUpdate(ctx context.Context, userEmail string, itemID int) (*domain.InventoryItem, error) {
	args := m.Called(ctx, userEmail, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *Tx) InsertInventoryItem(ctx context.Context, userEmail string, itemID, stack int) (*domain.InventoryItem, error) {
	args := m.Called(ctx, userEmail, itemID, stack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *Tx) UpdateInventoryStack(ctx context.Context, userEmail string, itemID, stack int) (*domain.InventoryItem, error) {
	args := m.Called(ctx, userEmail, itemID, stack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *Tx) DeleteInventoryItem(ctx context.Context, userEmail string, itemID int) error {
	args := m.Called(ctx, userEmail, itemID)
	return args.Error(0)
}

func (m *Tx) GetEquippedItems(ctx context.Context, userEmail string) ([]domain.EquippedItem, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EquippedItem), args.Error(1)
}

func (m *Tx) GetEquippedItem(ctx context.Context, userEmail string, itemID int) (*domain.EquippedItem, error) {
	args := m.Called(ctx, userEmail, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquippedItem), args.Error(1)
}

func (m *Tx) InsertEquippedItem(ctx context.Context, userEmail string, itemID int, category domain.Category) error {
	args := m.Called(ctx, userEmail, itemID, category)
	return args.Error(0)
}

func (m *Tx) DeleteEquippedItem(ctx context.Context, userEmail string, itemID int) error {
	args := m.Called(ctx, userEmail, itemID)
	return args.Error(0)
}

func (m *Tx) GetStatsForUpdate(ctx context.Context, userEmail string) (*domain.Stats, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *Tx) UpdateStats(ctx context.Context, stats *domain.Stats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *Tx) GetUserForUpdate(ctx context.Context, userEmail string) (*domain.User, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *Tx) UpdateSilver(ctx context.Context, userEmail string, silver int64) error {
	args := m.Called(ctx, userEmail, silver)
	return args.Error(0)
}

func (m *Tx) GetProfessionForUser(ctx context.Context, userEmail string) (*domain.Profession, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profession), args.Error(1)
}

func (m *Tx) GetListingForUpdate(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketListing), args.Error(1)
}

func (m *Tx) InsertListing(ctx context.Context, listing *domain.MarketListing) (*domain.MarketListing, error) {
	args := m.Called(ctx, listing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketListing), args.Error(1)
}

func (m *Tx) UpdateListingStack(ctx context.Context, listingID int64, stack int) error {
	args := m.Called(ctx, listingID, stack)
	return args.Error(0)
}

func (m *Tx) CloseListing(ctx context.Context, listingID int64, status domain.ListingStatus) error {
	args := m.Called(ctx, listingID, status)
	return args.Error(0)
}

func (m *Tx) InsertPaymentEvent(ctx context.Context, event *domain.PaymentEvent) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

func (m *Tx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Tx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
