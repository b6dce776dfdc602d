package domain

import "time"

// PaymentEvent records an external purchase credit that has been applied.
// The provider transaction id is the dedup key: webhook deliveries are
// at-least-once, and a replayed event must credit nothing.
type PaymentEvent struct {
	ProviderTransactionID string    `json:"provider_transaction_id" db:"provider_transaction_id"`
	UserEmail             string    `json:"user_email" db:"user_email"`
	Amount                int64     `json:"amount" db:"amount"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
}
