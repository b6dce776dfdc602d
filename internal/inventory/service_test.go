package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/repository/mocks"
)

const (
	testUser  = "alice@example.com"
	otherUser = "bob@example.com"
	testItem  = 7
)

func newMocks() (*mocks.Store, *mocks.Tx) {
	store := new(mocks.Store)
	tx := new(mocks.Tx)
	store.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)
	return store, tx
}

func TestAddItem_CreatesNewStack(t *testing.T) {
	store, tx := newMocks()
	svc := NewService(store)

	tx.On("GetInventoryItemForUpdate", mock.Anything, testUser, testItem).Return(nil, nil)
	tx.On("InsertInventoryItem", mock.Anything, testUser, testItem, 3).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 3}, nil)

	row, err := svc.AddItem(context.Background(), testUser, testItem, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, row.Stack)
	tx.AssertExpectations(t)
}

func TestAddItem_GrowsExistingStack(t *testing.T) {
	store, tx := newMocks()
	svc := NewService(store)

	tx.On("GetInventoryItemForUpdate", mock.Anything, testUser, testItem).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 4}, nil)
	tx.On("UpdateInventoryStack", mock.Anything, testUser, testItem, 6).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 6}, nil)

	row, err := svc.AddItem(context.Background(), testUser, testItem, 2)

	assert.NoError(t, err)
	assert.Equal(t, 6, row.Stack)
	tx.AssertNotCalled(t, "InsertInventoryItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddItem_RejectsNonPositiveStack(t *testing.T) {
	store, tx := newMocks()
	svc := NewService(store)

	_, err := svc.AddItem(context.Background(), testUser, testItem, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRemoveItem_DeletesDrainedStack(t *testing.T) {
	store, tx := newMocks()
	svc := NewService(store)

	tx.On("GetInventoryItemForUpdate", mock.Anything, testUser, testItem).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 2}, nil)
	tx.On("DeleteInventoryItem", mock.Anything, testUser, testItem).Return(nil)

	err := svc.RemoveItem(context.Background(), testUser, testItem, 2)

	assert.NoError(t, err)
	tx.AssertCalled(t, "DeleteInventoryItem", mock.Anything, testUser, testItem)
	tx.AssertNotCalled(t, "UpdateInventoryStack", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveItem_ShrinksStack(t *testing.T) {
	store, tx := newMocks()
	svc := NewService(store)

	tx.On("GetInventoryItemForUpdate", mock.Anything, testUser, testItem).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 5}, nil)
	tx.On("UpdateInventoryStack", mock.Anything, testUser, testItem, 3).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 3}, nil)

	err := svc.RemoveItem(context.Background(), testUser, testItem, 2)

	assert.NoError(t, err)
	tx.AssertNotCalled(t, "DeleteInventoryItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveItem_NotHeld(t *testing.T) {
	store, tx := newMocks()
	svc := NewService(store)

	tx.On("GetInventoryItemForUpdate", mock.Anything, testUser, testItem).Return(nil, nil)

	err := svc.RemoveItem(context.Background(), testUser, testItem, 1)

	assert.ErrorIs(t, err, domain.ErrItemNotHeld)
}

func TestRemoveItem_InsufficientStack(t *testing.T) {
	store, tx := newMocks()
	svc := NewService(store)

	tx.On("GetInventoryItemForUpdate", mock.Anything, testUser, testItem).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 1}, nil)

	err := svc.RemoveItem(context.Background(), testUser, testItem, 5)

	assert.ErrorIs(t, err, domain.ErrInsufficientStack)
	tx.AssertNotCalled(t, "DeleteInventoryItem", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "UpdateInventoryStack", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferItem_MovesStackBetweenPlayers(t *testing.T) {
	store, tx := newMocks()
	svc := NewService(store)

	tx.On("GetInventoryItemForUpdate", mock.Anything, testUser, testItem).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 5}, nil)
	tx.On("UpdateInventoryStack", mock.Anything, testUser, testItem, 3).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 3}, nil)
	tx.On("GetInventoryItemForUpdate", mock.Anything, otherUser, testItem).Return(nil, nil)
	tx.On("InsertInventoryItem", mock.Anything, otherUser, testItem, 2).
		Return(&domain.InventoryItem{UserEmail: otherUser, ItemID: testItem, Stack: 2}, nil)

	err := svc.TransferItem(context.Background(), testUser, otherUser, testItem, 2)

	assert.NoError(t, err)
	tx.AssertExpectations(t)
}

func TestTransferItem_RejectsSelfTransfer(t *testing.T) {
	store, _ := newMocks()
	svc := NewService(store)

	err := svc.TransferItem(context.Background(), testUser, testUser, testItem, 1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	store.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestTransferItem_UnknownRecipientRollsBack(t *testing.T) {
	store, tx := newMocks()
	svc := NewService(store)

	tx.On("GetInventoryItemForUpdate", mock.Anything, testUser, testItem).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 5}, nil)
	tx.On("UpdateInventoryStack", mock.Anything, testUser, testItem, 4).
		Return(&domain.InventoryItem{UserEmail: testUser, ItemID: testItem, Stack: 4}, nil)
	tx.On("GetInventoryItemForUpdate", mock.Anything, otherUser, testItem).Return(nil, nil)
	tx.On("InsertInventoryItem", mock.Anything, otherUser, testItem, 1).
		Return(nil, domain.ErrUnknownReference)

	err := svc.TransferItem(context.Background(), testUser, otherUser, testItem, 1)

	assert.ErrorIs(t, err, domain.ErrUnknownReference)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertCalled(t, "Rollback", mock.Anything)
}

func TestGetInventory(t *testing.T) {
	store, _ := newMocks()
	svc := NewService(store)

	store.On("GetInventory", mock.Anything, testUser).Return([]domain.InventoryItem{
		{UserEmail: testUser, ItemID: testItem, Stack: 2},
	}, nil)

	items, err := svc.GetInventory(context.Background(), testUser)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
}
