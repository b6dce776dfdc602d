package domain

// Stats is the per-player combat sheet. Current pools are always clamped
// into [0, max]; max pools and combat stats move with equipment and levels.
type Stats struct {
	UserEmail  string `json:"user_email" db:"user_email"`
	Level      int    `json:"level" db:"level"`
	Experience int    `json:"experience" db:"experience"`
	Health     int    `json:"health" db:"health"`
	MaxHealth  int    `json:"max_health" db:"max_health"`
	Mana       int    `json:"mana" db:"mana"`
	MaxMana    int    `json:"max_mana" db:"max_mana"`
	Attack     int    `json:"attack" db:"attack"`
	Strength   int    `json:"strength" db:"strength"`
	Agility    int    `json:"agility" db:"agility"`
	Intellect  int    `json:"intellect" db:"intellect"`
}

// ClampPools forces current health/mana back into their valid ranges.
// Called after any mutation that can shrink a max pool.
func (s *Stats) ClampPools() {
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	if s.Health < 0 {
		s.Health = 0
	}
	if s.Mana > s.MaxMana {
		s.Mana = s.MaxMana
	}
	if s.Mana < 0 {
		s.Mana = 0
	}
}
