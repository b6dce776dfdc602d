package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/emberworks/ironhold/internal/domain"
)

// GetListingForUpdate loads one listing with a row lock, or nil when absent.
// Locking the row makes two purchases of the same listing queue rather than
// both read the stale stack.
func (t *ledgerTx) GetListingForUpdate(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	query := `
		SELECT listing_id, seller_email, item_id, price, stack, status, created_at
		FROM market_listings
		WHERE listing_id = $1
		FOR UPDATE
	`
	var l domain.MarketListing
	err := t.tx.QueryRow(ctx, query, listingID).Scan(
		&l.ID, &l.SellerEmail, &l.ItemID, &l.Price, &l.Stack, &l.Status, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("failed to get listing", err)
	}
	return &l, nil
}

// InsertListing creates a new active listing.
func (t *ledgerTx) InsertListing(ctx context.Context, listing *domain.MarketListing) (*domain.MarketListing, error) {
	query := `
		INSERT INTO market_listings (seller_email, item_id, price, stack, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING listing_id, created_at
	`
	created := *listing
	err := t.tx.QueryRow(ctx, query,
		listing.SellerEmail, listing.ItemID, listing.Price, listing.Stack, listing.Status).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, mapError("failed to insert listing", err)
	}
	return &created, nil
}

// UpdateListingStack sets the remaining escrowed stack of a listing.
func (t *ledgerTx) UpdateListingStack(ctx context.Context, listingID int64, stack int) error {
	_, err := t.tx.Exec(ctx,
		"UPDATE market_listings SET stack = $2 WHERE listing_id = $1",
		listingID, stack)
	if err != nil {
		return mapError("failed to update listing stack", err)
	}
	return nil
}

// CloseListing moves a listing to a terminal status with zero stack. The row
// is kept for trade history; only active listings are browsable.
func (t *ledgerTx) CloseListing(ctx context.Context, listingID int64, status domain.ListingStatus) error {
	_, err := t.tx.Exec(ctx,
		"UPDATE market_listings SET status = $2, stack = 0 WHERE listing_id = $1",
		listingID, status)
	if err != nil {
		return mapError("failed to close listing", err)
	}
	return nil
}

// InsertPaymentEvent records an external credit, reporting false when the
// provider transaction id was seen before. The insert and the credit it
// guards share one transaction, so a replayed webhook can never double-apply.
func (t *ledgerTx) InsertPaymentEvent(ctx context.Context, event *domain.PaymentEvent) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		INSERT INTO payment_events (provider_transaction_id, user_email, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (provider_transaction_id) DO NOTHING
	`, event.ProviderTransactionID, event.UserEmail, event.Amount)
	if err != nil {
		return false, mapError("failed to insert payment event", err)
	}
	return tag.RowsAffected() > 0, nil
}
