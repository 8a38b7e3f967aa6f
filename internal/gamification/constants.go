package gamification

// Level progression. Advancing out of level N costs N*LevelXPSlope +
// LevelXPBase XP, and every user starts at BaseLevel.
const (
	BaseLevel    = 1
	LevelXPSlope = 100
	LevelXPBase  = 200

	// MaxIterationLevel bounds the level computation loop
	MaxIterationLevel = 1000
)

// XP sources recorded in the ledger
const (
	SourceMissionComplete = "mission_complete"
	SourceMissionStep     = "mission_step"
	SourceStepUndo        = "mission_step_undo"
	SourceDoseTaken       = "dose_taken"
	SourceStreakBonus     = "streak_bonus"
)

// XPPerDose is awarded for each medication dose logged as taken
const XPPerDose = 5

// XP history paging
const (
	DefaultXPHistoryLimit = 50
	MaxXPHistoryLimit     = 500
)
