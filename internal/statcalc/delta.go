// Package statcalc holds the pure stat arithmetic of the engine: the deltas
// an item contributes while equipped, the restore applied by consumables,
// the per-level profession gains and the experience curve. No I/O, no state.
package statcalc

import "github.com/emberworks/ironhold/internal/domain"

// StatDelta is a signed adjustment to a player's stat sheet. Equip applies
// the item's delta, unequip applies its negation; the two are exact inverses.
type StatDelta struct {
	MaxHealth int
	MaxMana   int
	Attack    int
	Strength  int
	Agility   int
	Intellect int
}

// ItemDelta returns the stat contribution of an equipped item.
func ItemDelta(item *domain.Item) StatDelta {
	return StatDelta{
		MaxHealth: item.Health,
		MaxMana:   item.Mana,
		Attack:    item.Attack,
		Strength:  item.Strength,
		Agility:   item.Agility,
		Intellect: item.Intellect,
	}
}

// Negate returns the inverse delta.
func (d StatDelta) Negate() StatDelta {
	return StatDelta{
		MaxHealth: -d.MaxHealth,
		MaxMana:   -d.MaxMana,
		Attack:    -d.Attack,
		Strength:  -d.Strength,
		Agility:   -d.Agility,
		Intellect: -d.Intellect,
	}
}

// Scale multiplies every component by n.
func (d StatDelta) Scale(n int) StatDelta {
	return StatDelta{
		MaxHealth: d.MaxHealth * n,
		MaxMana:   d.MaxMana * n,
		Attack:    d.Attack * n,
		Strength:  d.Strength * n,
		Agility:   d.Agility * n,
		Intellect: d.Intellect * n,
	}
}

// Apply adjusts the stat sheet in place. Current pools are clamped back into
// [0, max] afterwards, so shrinking a max pool never leaves the current pool
// above it.
func (d StatDelta) Apply(s *domain.Stats) {
	s.MaxHealth += d.MaxHealth
	s.MaxMana += d.MaxMana
	s.Attack += d.Attack
	s.Strength += d.Strength
	s.Agility += d.Agility
	s.Intellect += d.Intellect
	s.ClampPools()
}

// Restore applies a consumable's health/mana contribution to the *current*
// pools, clamped to max. Returns false when the item would change nothing
// (both pools already full or the item restores nothing).
func Restore(s *domain.Stats, item *domain.Item) bool {
	before := *s
	s.Health += item.Health
	s.Mana += item.Mana
	s.ClampPools()
	return s.Health != before.Health || s.Mana != before.Mana
}
