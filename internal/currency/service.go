// Package currency is the silver ledger. Balances live on the user row,
// never go negative, and every movement happens inside a serializable
// transaction so a debit can never race its own balance check.
package currency

import (
	"context"
	"fmt"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/logger"
	"github.com/emberworks/ironhold/internal/metrics"
	"github.com/emberworks/ironhold/internal/repository"
)

// Service defines the interface for currency operations. The ...Tx variants
// participate in a caller-owned transaction (market settlement, progression
// rewards); the plain variants manage their own.
type Service interface {
	GetBalance(ctx context.Context, userEmail string) (int64, error)
	Credit(ctx context.Context, userEmail string, amount int64) (int64, error)
	Debit(ctx context.Context, userEmail string, amount int64) (int64, error)
	Transfer(ctx context.Context, fromEmail, toEmail string, amount int64) error

	CreditTx(ctx context.Context, tx repository.Tx, userEmail string, amount int64) (int64, error)
	DebitTx(ctx context.Context, tx repository.Tx, userEmail string, amount int64) (int64, error)
	TransferTx(ctx context.Context, tx repository.Tx, fromEmail, toEmail string, amount int64) error

	// CreditExternal applies a payment-provider credit exactly once per
	// provider transaction id. Returns false when the event was already
	// applied.
	CreditExternal(ctx context.Context, providerTxID, userEmail string, amount int64) (bool, error)
}

type service struct {
	repo repository.Currency
}

// NewService creates a new currency service
func NewService(repo repository.Currency) Service {
	return &service{repo: repo}
}

func (s *service) GetBalance(ctx context.Context, userEmail string) (int64, error) {
	user, err := s.repo.GetUser(ctx, userEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userEmail)
	}
	return user.Silver, nil
}

func (s *service) Credit(ctx context.Context, userEmail string, amount int64) (int64, error) {
	var balance int64
	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		var err error
		balance, err = s.CreditTx(ctx, tx, userEmail, amount)
		return err
	})
	return balance, err
}

// CreditTx adds silver, returning the new balance.
func (s *service) CreditTx(ctx context.Context, tx repository.Tx, userEmail string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive, got %d", domain.ErrInvalidInput, amount)
	}

	user, err := tx.GetUserForUpdate(ctx, userEmail)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userEmail)
	}

	balance := user.Silver + amount
	if err := tx.UpdateSilver(ctx, userEmail, balance); err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *service) Debit(ctx context.Context, userEmail string, amount int64) (int64, error) {
	var balance int64
	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		var err error
		balance, err = s.DebitTx(ctx, tx, userEmail, amount)
		return err
	})
	return balance, err
}

// DebitTx removes silver, returning the new balance. The balance check and
// the write share the row lock, so the balance can never go negative.
func (s *service) DebitTx(ctx context.Context, tx repository.Tx, userEmail string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive, got %d", domain.ErrInvalidInput, amount)
	}

	user, err := tx.GetUserForUpdate(ctx, userEmail)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userEmail)
	}
	if user.Silver < amount {
		return 0, fmt.Errorf("%w: balance %d, need %d", domain.ErrInsufficientFunds, user.Silver, amount)
	}

	balance := user.Silver - amount
	if err := tx.UpdateSilver(ctx, userEmail, balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// Transfer moves silver between players atomically.
func (s *service) Transfer(ctx context.Context, fromEmail, toEmail string, amount int64) error {
	log := logger.FromContext(ctx)
	log.Info("Transfer called", "from", fromEmail, "to", toEmail, "amount", amount)

	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		return s.TransferTx(ctx, tx, fromEmail, toEmail, amount)
	})
	if err != nil {
		return err
	}

	metrics.SilverTransferred.Add(float64(amount))
	log.Info("Silver transferred", "from", fromEmail, "to", toEmail, "amount", amount)
	return nil
}

// TransferTx debits the sender and credits the receiver inside the caller's
// transaction. Either both legs land or neither does.
func (s *service) TransferTx(ctx context.Context, tx repository.Tx, fromEmail, toEmail string, amount int64) error {
	if fromEmail == toEmail {
		return fmt.Errorf("%w: cannot transfer to self", domain.ErrInvalidInput)
	}
	if _, err := s.DebitTx(ctx, tx, fromEmail, amount); err != nil {
		return err
	}
	_, err := s.CreditTx(ctx, tx, toEmail, amount)
	return err
}

func (s *service) CreditExternal(ctx context.Context, providerTxID, userEmail string, amount int64) (bool, error) {
	log := logger.FromContext(ctx)
	log.Info("CreditExternal called", "providerTxID", providerTxID, "user", userEmail, "amount", amount)

	if providerTxID == "" {
		return false, fmt.Errorf("%w: provider transaction id required", domain.ErrInvalidInput)
	}
	if amount <= 0 {
		return false, fmt.Errorf("%w: amount must be positive, got %d", domain.ErrInvalidInput, amount)
	}

	applied := false
	err := repository.WithTx(ctx, s.repo, func(tx repository.Tx) error {
		applied = false

		user, err := tx.GetUserForUpdate(ctx, userEmail)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userEmail)
		}

		// The dedup insert and the credit commit together; a replayed event
		// either finds its row already present or re-runs both from scratch.
		inserted, err := tx.InsertPaymentEvent(ctx, &domain.PaymentEvent{
			ProviderTransactionID: providerTxID,
			UserEmail:             userEmail,
			Amount:                amount,
		})
		if err != nil {
			return err
		}
		if !inserted {
			log.Info("Payment event already applied", "providerTxID", providerTxID)
			return nil
		}

		if err := tx.UpdateSilver(ctx, userEmail, user.Silver+amount); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if applied {
		log.Info("External credit applied", "user", userEmail, "amount", amount)
	}
	return applied, nil
}
