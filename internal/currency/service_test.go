package currency

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/repository/mocks"
)

const (
	alice = "alice@example.com"
	bob   = "bob@example.com"
)

func newMocks() (*mocks.Store, *mocks.Tx, Service) {
	store := new(mocks.Store)
	tx := new(mocks.Tx)
	store.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)
	return store, tx, NewService(store)
}

func TestCredit(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetUserForUpdate", mock.Anything, alice).Return(&domain.User{Email: alice, Silver: 40}, nil)
	tx.On("UpdateSilver", mock.Anything, alice, int64(100)).Return(nil)

	balance, err := svc.Credit(context.Background(), alice, 60)

	assert.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestDebit_InsufficientFunds(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetUserForUpdate", mock.Anything, alice).Return(&domain.User{Email: alice, Silver: 10}, nil)

	_, err := svc.Debit(context.Background(), alice, 50)

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	tx.AssertNotCalled(t, "UpdateSilver", mock.Anything, mock.Anything, mock.Anything)
}

func TestDebit_RejectsNonPositiveAmount(t *testing.T) {
	_, tx, svc := newMocks()

	_, err := svc.Debit(context.Background(), alice, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	tx.AssertNotCalled(t, "GetUserForUpdate", mock.Anything, mock.Anything)
}

func TestDebit_UnknownUser(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetUserForUpdate", mock.Anything, alice).Return(nil, nil)

	_, err := svc.Debit(context.Background(), alice, 10)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTransfer_MovesBothLegs(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetUserForUpdate", mock.Anything, alice).Return(&domain.User{Email: alice, Silver: 100}, nil)
	tx.On("UpdateSilver", mock.Anything, alice, int64(60)).Return(nil)
	tx.On("GetUserForUpdate", mock.Anything, bob).Return(&domain.User{Email: bob, Silver: 5}, nil)
	tx.On("UpdateSilver", mock.Anything, bob, int64(45)).Return(nil)

	err := svc.Transfer(context.Background(), alice, bob, 40)

	assert.NoError(t, err)
	tx.AssertExpectations(t)
}

func TestTransfer_SelfRejected(t *testing.T) {
	_, tx, svc := newMocks()

	err := svc.Transfer(context.Background(), alice, alice, 10)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	tx.AssertNotCalled(t, "GetUserForUpdate", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransfer_UnknownRecipientRollsBack(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetUserForUpdate", mock.Anything, alice).Return(&domain.User{Email: alice, Silver: 100}, nil)
	tx.On("UpdateSilver", mock.Anything, alice, int64(90)).Return(nil)
	tx.On("GetUserForUpdate", mock.Anything, bob).Return(nil, nil)

	err := svc.Transfer(context.Background(), alice, bob, 10)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreditExternal_AppliesOnce(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetUserForUpdate", mock.Anything, alice).Return(&domain.User{Email: alice, Silver: 10}, nil)
	tx.On("InsertPaymentEvent", mock.Anything, mock.MatchedBy(func(e *domain.PaymentEvent) bool {
		return e.ProviderTransactionID == "txn-1" && e.UserEmail == alice && e.Amount == 500
	})).Return(true, nil)
	tx.On("UpdateSilver", mock.Anything, alice, int64(510)).Return(nil)

	applied, err := svc.CreditExternal(context.Background(), "txn-1", alice, 500)

	assert.NoError(t, err)
	assert.True(t, applied)
}

func TestCreditExternal_ReplayIsNoOp(t *testing.T) {
	_, tx, svc := newMocks()

	tx.On("GetUserForUpdate", mock.Anything, alice).Return(&domain.User{Email: alice, Silver: 510}, nil)
	tx.On("InsertPaymentEvent", mock.Anything, mock.Anything).Return(false, nil)

	applied, err := svc.CreditExternal(context.Background(), "txn-1", alice, 500)

	assert.NoError(t, err)
	assert.False(t, applied)
	tx.AssertNotCalled(t, "UpdateSilver", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreditExternal_RequiresTransactionID(t *testing.T) {
	store, _, svc := newMocks()

	_, err := svc.CreditExternal(context.Background(), "", alice, 500)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	store.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestGetBalance(t *testing.T) {
	store, _, svc := newMocks()

	store.On("GetUser", mock.Anything, alice).Return(&domain.User{Email: alice, Silver: 77}, nil)

	balance, err := svc.GetBalance(context.Background(), alice)

	assert.NoError(t, err)
	assert.Equal(t, int64(77), balance)
}
