package domain

// Category classifies a catalog item. The set is closed: gameplay rules
// (equippability, slot exclusivity) are keyed off it.
type Category string

const (
	CategoryConsumable Category = "consumable"
	CategoryWeapon     Category = "weapon"
	CategoryArmor      Category = "armor"
	CategoryHelmet     Category = "helmet"
	CategoryBoots      Category = "boots"
	CategoryAccessory  Category = "accessory"
)

// Categories lists every valid item category.
var Categories = []Category{
	CategoryConsumable,
	CategoryWeapon,
	CategoryArmor,
	CategoryHelmet,
	CategoryBoots,
	CategoryAccessory,
}

// Valid reports whether the category is one of the known set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Equippable reports whether items of this category occupy an equipment slot.
// Consumables are used, never worn.
func (c Category) Equippable() bool {
	return c.Valid() && c != CategoryConsumable
}

// Item is a catalog entry. The catalog is authored content: immutable at
// runtime, referenced by id from inventory, equipment and market rows.
// Stat fields are the contribution the item makes while equipped (max pools
// and combat stats) or, for consumables, the amount restored on use.
type Item struct {
	ID        int      `json:"item_id" db:"item_id"`
	Name      string   `json:"name" db:"name"`
	Category  Category `json:"category" db:"category"`
	Health    int      `json:"health" db:"health"`
	Mana      int      `json:"mana" db:"mana"`
	Attack    int      `json:"attack" db:"attack"`
	Strength  int      `json:"strength" db:"strength"`
	Agility   int      `json:"agility" db:"agility"`
	Intellect int      `json:"intellect" db:"intellect"`
}
