package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/emberworks/ironhold/internal/currency"
	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/inventory"
	"github.com/emberworks/ironhold/internal/repository/mocks"
)

const (
	seller = "seller@example.com"
	buyer  = "buyer@example.com"
)

var sword = &domain.Item{ID: 7, Name: "iron sword", Category: domain.CategoryWeapon, Attack: 5}

func newMocks() (*mocks.Store, *mocks.Tx, Service) {
	store := new(mocks.Store)
	tx := new(mocks.Tx)
	store.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)
	svc := NewService(store, inventory.NewService(store), currency.NewService(store))
	return store, tx, svc
}

func TestList_EscrowsStackThenCreatesListing(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetItem", mock.Anything, sword.ID).Return(sword, nil)
	tx.On("GetInventoryItemForUpdate", mock.Anything, seller, sword.ID).
		Return(&domain.InventoryItem{UserEmail: seller, ItemID: sword.ID, Stack: 5}, nil)
	tx.On("UpdateInventoryStack", mock.Anything, seller, sword.ID, 2).
		Return(&domain.InventoryItem{UserEmail: seller, ItemID: sword.ID, Stack: 2}, nil)
	tx.On("InsertListing", mock.Anything, mock.MatchedBy(func(l *domain.MarketListing) bool {
		return l.SellerEmail == seller && l.ItemID == sword.ID && l.Price == 10 &&
			l.Stack == 3 && l.Status == domain.ListingActive
	})).Return(&domain.MarketListing{
		ID: 1, SellerEmail: seller, ItemID: sword.ID, Price: 10, Stack: 3, Status: domain.ListingActive,
	}, nil)

	listing, err := svc.List(context.Background(), seller, sword.ID, 10, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), listing.ID)
	assert.Equal(t, domain.ListingActive, listing.Status)
	tx.AssertExpectations(t)
}

func TestList_InsufficientStackCreatesNoListing(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetItem", mock.Anything, sword.ID).Return(sword, nil)
	tx.On("GetInventoryItemForUpdate", mock.Anything, seller, sword.ID).
		Return(&domain.InventoryItem{UserEmail: seller, ItemID: sword.ID, Stack: 1}, nil)

	_, err := svc.List(context.Background(), seller, sword.ID, 10, 5)

	assert.ErrorIs(t, err, domain.ErrInsufficientStack)
	tx.AssertNotCalled(t, "InsertListing", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestList_RejectsBadPrice(t *testing.T) {
	store, _, svc := newMocks()

	_, err := svc.List(context.Background(), seller, sword.ID, 0, 1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	store.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func activeListing(stack int) *domain.MarketListing {
	return &domain.MarketListing{
		ID: 1, SellerEmail: seller, ItemID: sword.ID, Price: 10, Stack: stack, Status: domain.ListingActive,
	}
}

func TestPurchase_PartialDecrementsStack(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetListingForUpdate", mock.Anything, int64(1)).Return(activeListing(5), nil)
	tx.On("GetUserForUpdate", mock.Anything, buyer).Return(&domain.User{Email: buyer, Silver: 100}, nil)
	tx.On("UpdateSilver", mock.Anything, buyer, int64(80)).Return(nil)
	tx.On("GetUserForUpdate", mock.Anything, seller).Return(&domain.User{Email: seller, Silver: 5}, nil)
	tx.On("UpdateSilver", mock.Anything, seller, int64(25)).Return(nil)
	tx.On("GetInventoryItemForUpdate", mock.Anything, buyer, sword.ID).Return(nil, nil)
	tx.On("InsertInventoryItem", mock.Anything, buyer, sword.ID, 2).
		Return(&domain.InventoryItem{UserEmail: buyer, ItemID: sword.ID, Stack: 2}, nil)
	tx.On("UpdateListingStack", mock.Anything, int64(1), 3).Return(nil)

	result, err := svc.Purchase(context.Background(), buyer, 1, 2)

	assert.NoError(t, err)
	assert.Equal(t, int64(20), result.TotalPrice)
	assert.Equal(t, 3, result.Remaining)
	tx.AssertNotCalled(t, "CloseListing", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertExpectations(t)
}

func TestPurchase_LastUnitsCloseListingSold(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetListingForUpdate", mock.Anything, int64(1)).Return(activeListing(2), nil)
	tx.On("GetUserForUpdate", mock.Anything, buyer).Return(&domain.User{Email: buyer, Silver: 50}, nil)
	tx.On("UpdateSilver", mock.Anything, buyer, int64(30)).Return(nil)
	tx.On("GetUserForUpdate", mock.Anything, seller).Return(&domain.User{Email: seller, Silver: 0}, nil)
	tx.On("UpdateSilver", mock.Anything, seller, int64(20)).Return(nil)
	tx.On("GetInventoryItemForUpdate", mock.Anything, buyer, sword.ID).Return(nil, nil)
	tx.On("InsertInventoryItem", mock.Anything, buyer, sword.ID, 2).
		Return(&domain.InventoryItem{UserEmail: buyer, ItemID: sword.ID, Stack: 2}, nil)
	tx.On("CloseListing", mock.Anything, int64(1), domain.ListingSold).Return(nil)

	result, err := svc.Purchase(context.Background(), buyer, 1, 2)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Remaining)
	tx.AssertNotCalled(t, "UpdateListingStack", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchase_InsufficientFundsDeliversNothing(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetListingForUpdate", mock.Anything, int64(1)).Return(activeListing(5), nil)
	tx.On("GetUserForUpdate", mock.Anything, buyer).Return(&domain.User{Email: buyer, Silver: 5}, nil)

	_, err := svc.Purchase(context.Background(), buyer, 1, 2)

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	tx.AssertNotCalled(t, "InsertInventoryItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "UpdateListingStack", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestPurchase_MoreThanListedRejected(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetListingForUpdate", mock.Anything, int64(1)).Return(activeListing(2), nil)

	_, err := svc.Purchase(context.Background(), buyer, 1, 3)

	assert.ErrorIs(t, err, domain.ErrInsufficientStack)
	tx.AssertNotCalled(t, "GetUserForUpdate", mock.Anything, mock.Anything)
}

func TestPurchase_OwnListingRejected(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetListingForUpdate", mock.Anything, int64(1)).Return(activeListing(2), nil)

	_, err := svc.Purchase(context.Background(), seller, 1, 1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchase_ClosedListingNotFound(t *testing.T) {
	_, tx, svc := newMocks()

	closed := activeListing(0)
	closed.Status = domain.ListingSold
	tx.On("GetListingForUpdate", mock.Anything, int64(1)).Return(closed, nil)

	_, err := svc.Purchase(context.Background(), buyer, 1, 1)

	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestCancel_ReturnsEscrowToSeller(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetListingForUpdate", mock.Anything, int64(1)).Return(activeListing(4), nil)
	tx.On("GetInventoryItemForUpdate", mock.Anything, seller, sword.ID).
		Return(&domain.InventoryItem{UserEmail: seller, ItemID: sword.ID, Stack: 1}, nil)
	tx.On("UpdateInventoryStack", mock.Anything, seller, sword.ID, 5).
		Return(&domain.InventoryItem{UserEmail: seller, ItemID: sword.ID, Stack: 5}, nil)
	tx.On("CloseListing", mock.Anything, int64(1), domain.ListingCancelled).Return(nil)

	err := svc.Cancel(context.Background(), seller, 1)

	assert.NoError(t, err)
	tx.AssertExpectations(t)
}

func TestCancel_NonOwnerRejected(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetListingForUpdate", mock.Anything, int64(1)).Return(activeListing(4), nil)

	err := svc.Cancel(context.Background(), buyer, 1)

	assert.ErrorIs(t, err, domain.ErrNotOwner)
	tx.AssertNotCalled(t, "CloseListing", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindAll_PaginatesActiveListings(t *testing.T) {
	// Snapshot read: no transaction, so no BeginTx expectation.
	store := new(mocks.Store)
	svc := NewService(store, inventory.NewService(store), currency.NewService(store))

	store.On("FindListings", mock.Anything, domain.CategoryWeapon, PageSize, PageSize).
		Return([]domain.MarketListing{*activeListing(3)}, nil)

	listings, err := svc.FindAll(context.Background(), 2, domain.CategoryWeapon)

	assert.NoError(t, err)
	assert.Len(t, listings, 1)
	store.AssertExpectations(t)
}

func TestFindAll_UnknownCategoryRejected(t *testing.T) {
	store := new(mocks.Store)
	svc := NewService(store, inventory.NewService(store), currency.NewService(store))

	_, err := svc.FindAll(context.Background(), 1, domain.Category("vehicle"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	store.AssertNotCalled(t, "FindListings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
