package domain

// InventoryItem is one stack of a fungible item held by a player.
// The (UserEmail, ItemID) pair is unique; a row exists only while Stack > 0.
// When a removal drains the stack the row is deleted, so "does the player
// hold this item" is an existence check.
type InventoryItem struct {
	UserEmail string `json:"user_email" db:"user_email"`
	ItemID    int    `json:"item_id" db:"item_id"`
	Stack     int    `json:"stack" db:"stack"`
	Item      *Item  `json:"item,omitempty"`
}
