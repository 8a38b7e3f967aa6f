package catalog

// Error message formats
const (
	ErrMsgReadConfigFileFailed = "failed to read config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse config: %w"
	ErrMsgConfigNil            = "config is nil"
	ErrMsgNoMissionsDefined    = "no missions defined"

	ErrFmtMissionAtIndexEmpty  = "%w: mission at index %d has empty id"
	ErrFmtMissionEmptyTitle    = "%w: mission '%s' has empty title"
	ErrFmtMissionBadFrequency  = "%w: mission '%s' has invalid frequency '%s'"
	ErrFmtMissionNegativeXP    = "%w: mission '%s' has negative xp_reward"
	ErrFmtMissionNegativeSteps = "%w: mission '%s' has negative total_steps"

	ErrFmtAlternativeAtIndexEmpty = "%w: alternative at index %d has empty key"
	ErrFmtAlternativeBadTarget    = "%w: alternative '%s' replaces unknown mission '%s'"
	ErrFmtAlternativeEmptyTitle   = "%w: alternative '%s' has empty title"
	ErrFmtAlternativeBadSteps     = "%w: alternative '%s' must have positive total_steps"
	ErrFmtAlternativeNegativeXP   = "%w: alternative '%s' has negative xp_reward"

	ErrFmtAchievementAtIndexEmpty = "%w: achievement at index %d has empty id"
	ErrFmtAchievementEmptyTitle   = "%w: achievement '%s' has empty title"
	ErrFmtAchievementBadMetric    = "%w: achievement '%s' has invalid metric '%s'"
	ErrFmtAchievementBadThreshold = "%w: achievement '%s' must have positive threshold"
)
