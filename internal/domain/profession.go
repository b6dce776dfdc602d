package domain

// Profession is read-only reference data: the per-level stat gains for a
// player class. Each level gained adds these amounts to the matching max
// pool or combat stat.
type Profession struct {
	ID        int    `json:"profession_id" db:"profession_id"`
	Name      string `json:"name" db:"name"`
	Health    int    `json:"health" db:"health"`
	Mana      int    `json:"mana" db:"mana"`
	Strength  int    `json:"strength" db:"strength"`
	Agility   int    `json:"agility" db:"agility"`
	Intellect int    `json:"intellect" db:"intellect"`
}
