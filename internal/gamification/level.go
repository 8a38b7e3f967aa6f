package gamification

// XPForNextLevel returns the XP needed to advance out of the given level.
func XPForNextLevel(level int) int {
	return level*LevelXPSlope + LevelXPBase
}

// CalculateLevel determines the level from total XP. Level is always a pure
// function of the XP total, so retractions can lower it.
func CalculateLevel(totalXP int) int {
	level, _ := calculateLevelAndNextXP(totalXP)
	return level
}

// XPProgress returns the level for the XP total and how much more XP is
// needed to reach the next level.
func XPProgress(totalXP int) (level int, xpToNext int) {
	level, nextAt := calculateLevelAndNextXP(totalXP)
	return level, nextAt - totalXP
}

// calculateLevelAndNextXP computes the level and the cumulative XP at which
// the NEXT level is reached.
func calculateLevelAndNextXP(totalXP int) (int, int) {
	level := BaseLevel
	cumulative := 0

	for level < MaxIterationLevel {
		nextAt := cumulative + XPForNextLevel(level)
		if totalXP < nextAt {
			return level, nextAt
		}
		cumulative = nextAt
		level++
	}

	return level, cumulative + XPForNextLevel(level)
}
