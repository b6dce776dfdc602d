package statcalc

import (
	"math"

	"github.com/emberworks/ironhold/internal/domain"
)

// ExpPerLevelSquared is the curve constant: level n starts at
// ExpPerLevelSquared * (n-1)^2 total experience.
const ExpPerLevelSquared = 100

// LevelForExperience maps total experience to a level. The curve is
// quadratic and monotonic; level is never below 1.
func LevelForExperience(totalExp int) int {
	if totalExp <= 0 {
		return 1
	}
	return 1 + int(math.Sqrt(float64(totalExp)/ExpPerLevelSquared))
}

// ExperienceForLevel returns the total experience at which the given level
// begins. Inverse of LevelForExperience at level boundaries.
func ExperienceForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return ExpPerLevelSquared * (level - 1) * (level - 1)
}

// LevelUpDelta returns the stat gain for advancing the given number of
// levels under a profession. Pass a negative count for the symmetric
// level-down adjustment; the result is the exact negation of the
// corresponding level-up.
func LevelUpDelta(p *domain.Profession, levels int) StatDelta {
	return StatDelta{
		MaxHealth: p.Health,
		MaxMana:   p.Mana,
		Strength:  p.Strength,
		Agility:   p.Agility,
		Intellect: p.Intellect,
	}.Scale(levels)
}
