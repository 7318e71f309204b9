package dnd5e

// levelThresholds[i] is the experience needed to reach level i+1
var levelThresholds = [MaxLevel]int{
	0, 300, 900, 2_700, 6_500, 14_000, 23_000, 34_000, 48_000, 64_000,
	85_000, 100_000, 120_000, 140_000, 165_000, 195_000, 225_000, 265_000, 305_000, 355_000,
}

// ExpThreshold returns the experience required to reach level. Levels
// outside 1..20 are clamped.
func ExpThreshold(level int) int {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levelThresholds[level-1]
}

// LevelForExp returns the level implied by an experience total. Negative
// totals count as level 1.
func LevelForExp(exp int) int {
	level := 1
	for i, t := range levelThresholds {
		if exp >= t {
			level = i + 1
		}
	}
	return level
}

// ExpToNextLevelFor returns how much experience is missing for the next
// level, or 0 at the level cap.
func ExpToNextLevelFor(exp int) int {
	level := LevelForExp(exp)
	if level >= MaxLevel {
		return 0
	}
	return levelThresholds[level] - exp
}

// ExpLevel is the level implied by the character's experience
func (c *Character) ExpLevel() int {
	return LevelForExp(c.Experience)
}

// ExpToNextLevel is the experience still needed for the next level
func (c *Character) ExpToNextLevel() int {
	return ExpToNextLevelFor(c.Experience)
}

// HasToLevelUp is true when experience outpaces the recorded level.
// Leveling is never automatic.
func (c *Character) HasToLevelUp() bool {
	return c.ExpLevel() > c.Level()
}

// SetExpToLevel sets experience to the threshold of the current level
func (c *Character) SetExpToLevel() {
	c.Experience = ExpThreshold(c.Level())
}
