package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/repository"
)

// MockCurrencyService implements currency.Service for testing
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetBalance(ctx context.Context, userEmail string) (int64, error) {
	args := m.Called(ctx, userEmail)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurrencyService) Credit(ctx context.Context, userEmail string, amount int64) (int64, error) {
	args := m.Called(ctx, userEmail, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurrencyService) Debit(ctx context.Context, userEmail string, amount int64) (int64, error) {
	args := m.Called(ctx, userEmail, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurrencyService) Transfer(ctx context.Context, fromEmail, toEmail string, amount int64) error {
	args := m.Called(ctx, fromEmail, toEmail, amount)
	return args.Error(0)
}

func (m *MockCurrencyService) CreditTx(ctx context.Context, tx repository.Tx, userEmail string, amount int64) (int64, error) {
	args := m.Called(ctx, tx, userEmail, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurrencyService) DebitTx(ctx context.Context, tx repository.Tx, userEmail string, amount int64) (int64, error) {
	args := m.Called(ctx, tx, userEmail, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurrencyService) TransferTx(ctx context.Context, tx repository.Tx, fromEmail, toEmail string, amount int64) error {
	args := m.Called(ctx, tx, fromEmail, toEmail, amount)
	return args.Error(0)
}

func (m *MockCurrencyService) CreditExternal(ctx context.Context, providerTxID, userEmail string, amount int64) (bool, error) {
	args := m.Called(ctx, providerTxID, userEmail, amount)
	return args.Bool(0), args.Error(1)
}

func TestHandleTransferSilver_Success(t *testing.T) {
	svc := new(MockCurrencyService)
	svc.On("Transfer", mock.Anything, "alice@example.com", "bob@example.com", int64(40)).Return(nil)

	body := bytes.NewBufferString(`{"from_email":"alice@example.com","to_email":"bob@example.com","amount":40}`)
	req := httptest.NewRequest(http.MethodPost, "/user/silver/transfer", body)
	rec := httptest.NewRecorder()

	HandleTransferSilver(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleTransferSilver_InsufficientFundsMapped(t *testing.T) {
	svc := new(MockCurrencyService)
	svc.On("Transfer", mock.Anything, "alice@example.com", "bob@example.com", int64(40)).
		Return(domain.ErrInsufficientFunds)

	body := bytes.NewBufferString(`{"from_email":"alice@example.com","to_email":"bob@example.com","amount":40}`)
	req := httptest.NewRequest(http.MethodPost, "/user/silver/transfer", body)
	rec := httptest.NewRecorder()

	HandleTransferSilver(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgNotEnoughSilverError)
}

func TestHandleTransferSilver_RejectsNonPositiveAmount(t *testing.T) {
	svc := new(MockCurrencyService)

	body := bytes.NewBufferString(`{"from_email":"alice@example.com","to_email":"bob@example.com","amount":0}`)
	req := httptest.NewRequest(http.MethodPost, "/user/silver/transfer", body)
	rec := httptest.NewRecorder()

	HandleTransferSilver(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlePurchaseWebhook_Applied(t *testing.T) {
	svc := new(MockCurrencyService)
	svc.On("CreditExternal", mock.Anything, "txn-1", "alice@example.com", int64(500)).
		Return(true, nil)

	body := bytes.NewBufferString(`{"transaction_id":"txn-1","email":"alice@example.com","amount":500}`)
	req := httptest.NewRequest(http.MethodPost, "/purchase/webhook", body)
	rec := httptest.NewRecorder()

	HandlePurchaseWebhook(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applied":true`)
}

func TestHandlePurchaseWebhook_ReplayReportsNotApplied(t *testing.T) {
	svc := new(MockCurrencyService)
	svc.On("CreditExternal", mock.Anything, "txn-1", "alice@example.com", int64(500)).
		Return(false, nil)

	body := bytes.NewBufferString(`{"transaction_id":"txn-1","email":"alice@example.com","amount":500}`)
	req := httptest.NewRequest(http.MethodPost, "/purchase/webhook", body)
	rec := httptest.NewRecorder()

	HandlePurchaseWebhook(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applied":false`)
	assert.Contains(t, rec.Body.String(), "already applied")
}

func TestHandlePurchaseWebhook_RequiresTransactionID(t *testing.T) {
	svc := new(MockCurrencyService)

	body := bytes.NewBufferString(`{"transaction_id":"","email":"alice@example.com","amount":500}`)
	req := httptest.NewRequest(http.MethodPost, "/purchase/webhook", body)
	rec := httptest.NewRecorder()

	HandlePurchaseWebhook(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreditExternal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
