package statcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emberworks/ironhold/internal/domain"
)

func TestItemDelta_ApplyAndNegateAreInverse(t *testing.T) {
	item := &domain.Item{Health: 20, Mana: 10, Attack: 5, Strength: 3, Agility: 2, Intellect: 1}
	stats := domain.Stats{Health: 40, MaxHealth: 100, Mana: 30, MaxMana: 50, Attack: 10, Strength: 8, Agility: 6, Intellect: 4}

	original := stats
	delta := ItemDelta(item)
	delta.Apply(&stats)
	assert.Equal(t, 120, stats.MaxHealth)
	assert.Equal(t, 15, stats.Attack)

	delta.Negate().Apply(&stats)
	assert.Equal(t, original, stats)
}

func TestApply_ClampsCurrentPoolsWhenMaxShrinks(t *testing.T) {
	stats := domain.Stats{Health: 50, MaxHealth: 50, Mana: 40, MaxMana: 40}

	// Removing a +20/+15 item must drag the full pools down with the maxima.
	StatDelta{MaxHealth: 20, MaxMana: 15}.Negate().Apply(&stats)

	assert.Equal(t, 30, stats.MaxHealth)
	assert.Equal(t, 30, stats.Health)
	assert.Equal(t, 25, stats.MaxMana)
	assert.Equal(t, 25, stats.Mana)
}

func TestRestore(t *testing.T) {
	potion := &domain.Item{Category: domain.CategoryConsumable, Health: 30, Mana: 10}

	t.Run("restores clamped to max", func(t *testing.T) {
		stats := domain.Stats{Health: 80, MaxHealth: 100, Mana: 50, MaxMana: 50}
		changed := Restore(&stats, potion)
		assert.True(t, changed)
		assert.Equal(t, 100, stats.Health)
		assert.Equal(t, 50, stats.Mana)
	})

	t.Run("no effect when pools full", func(t *testing.T) {
		stats := domain.Stats{Health: 100, MaxHealth: 100, Mana: 50, MaxMana: 50}
		changed := Restore(&stats, potion)
		assert.False(t, changed)
		assert.Equal(t, 100, stats.Health)
	})
}
