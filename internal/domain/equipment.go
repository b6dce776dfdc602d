package domain

// EquippedItem is a piece of gear currently worn by a player. At most one
// equipped row may exist per (player, category) - the category column is
// denormalized from the catalog so the exclusivity rule can be enforced
// without a join.
type EquippedItem struct {
	UserEmail string   `json:"user_email" db:"user_email"`
	ItemID    int      `json:"item_id" db:"item_id"`
	Category  Category `json:"category" db:"category"`
	Item      *Item    `json:"item,omitempty"`
}
