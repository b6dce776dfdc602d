package domain

import "time"

// ListingStatus is the lifecycle state of a market listing.
type ListingStatus string

const (
	ListingActive    ListingStatus = "active"
	ListingSold      ListingStatus = "sold"
	ListingCancelled ListingStatus = "cancelled"
)

// MarketListing is an offer of Stack units of an item at Price silver per
// unit. The offered stack is escrowed: removed from the seller's inventory
// when the listing is created and only returned on cancellation. Partial
// purchases decrement Stack; the listing leaves the active state exactly
// when Stack reaches zero.
type MarketListing struct {
	ID          int64         `json:"listing_id" db:"listing_id"`
	SellerEmail string        `json:"seller_email" db:"seller_email"`
	ItemID      int           `json:"item_id" db:"item_id"`
	Price       int64         `json:"price" db:"price"`
	Stack       int           `json:"stack" db:"stack"`
	Status      ListingStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	Item        *Item         `json:"item,omitempty"`
}
