package ledger

import "math"

// Level curve constants
const (
	// BaseExp anchors the experience curve: ExpNeeded(level) = BaseExp * level^LevelExponent
	BaseExp = 100
	// LevelExponent controls curve steepness
	LevelExponent = 1.5
	// MaxLevel bounds the level-up loop
	MaxLevel = 1000
)

// Derived stat formulas
const (
	baseHP       = 100
	hpPerLevel   = 25
	baseEnergy   = 50
	energyPerLvl = 5
)

// ExpNeeded returns the experience required to advance FROM the given level
func ExpNeeded(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(BaseExp * math.Pow(float64(level), LevelExponent))
}

// MaxHPForLevel returns the maximum HP at a level
func MaxHPForLevel(level int) int {
	return baseHP + (level-1)*hpPerLevel
}

// MaxEnergyForLevel returns the maximum energy at a level
func MaxEnergyForLevel(level int) int {
	return baseEnergy + (level-1)*energyPerLvl
}
