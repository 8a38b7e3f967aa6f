package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/validation"
)

// Sentinel errors for catalog loading
var (
	ErrDuplicateID   = errors.New("duplicate catalog id")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Schema paths
const (
	MissionsSchemaPath     = "configs/schemas/missions.schema.json"
	AchievementsSchemaPath = "configs/schemas/achievements.schema.json"
)

// MissionsConfig represents the JSON configuration for missions and their
// alternatives
type MissionsConfig struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Missions     []domain.MissionDefinition     `json:"missions"`
	Alternatives []domain.AlternativeDefinition `json:"alternatives"`
}

// AchievementsConfig represents the JSON configuration for achievements
type AchievementsConfig struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Achievements []domain.AchievementDefinition `json:"achievements"`
}

// Loader handles loading and validating the static catalog configuration
type Loader interface {
	Load(missionsPath, achievementsPath string) (*Catalog, error)
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads, validates and indexes both catalog files. The returned Catalog
// is immutable for the lifetime of the process.
func (l *catalogLoader) Load(missionsPath, achievementsPath string) (*Catalog, error) {
	missions, err := l.loadMissions(missionsPath)
	if err != nil {
		return nil, err
	}

	achievements, err := l.loadAchievements(achievementsPath)
	if err != nil {
		return nil, err
	}

	return New(missions.Missions, missions.Alternatives, achievements.Achievements), nil
}

func (l *catalogLoader) loadMissions(path string) (*MissionsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, MissionsSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config MissionsConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	if err := validateMissions(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (l *catalogLoader) loadAchievements(path string) (*AchievementsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, AchievementsSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config AchievementsConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	if err := validateAchievements(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateMissions(config *MissionsConfig) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(config.Missions) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoMissionsDefined)
	}

	ids := make(map[string]bool, len(config.Missions))
	for i := range config.Missions {
		if err := validateMissionDef(i, &config.Missions[i], ids); err != nil {
			return err
		}
	}

	keys := make(map[string]bool, len(config.Alternatives))
	for i := range config.Alternatives {
		if err := validateAlternativeDef(i, &config.Alternatives[i], ids, keys); err != nil {
			return err
		}
	}

	return nil
}

func validateMissionDef(index int, def *domain.MissionDefinition, ids map[string]bool) error {
	if def.ID == "" {
		return fmt.Errorf(ErrFmtMissionAtIndexEmpty, ErrInvalidConfig, index)
	}
	if ids[def.ID] {
		return fmt.Errorf("%w: '%s'", ErrDuplicateID, def.ID)
	}
	ids[def.ID] = true

	if def.Title == "" {
		return fmt.Errorf(ErrFmtMissionEmptyTitle, ErrInvalidConfig, def.ID)
	}
	if def.Frequency != domain.MissionFrequencyDaily && def.Frequency != domain.MissionFrequencyWeekly {
		return fmt.Errorf(ErrFmtMissionBadFrequency, ErrInvalidConfig, def.ID, def.Frequency)
	}
	if def.XPReward < 0 {
		return fmt.Errorf(ErrFmtMissionNegativeXP, ErrInvalidConfig, def.ID)
	}
	if def.TotalSteps < 0 {
		return fmt.Errorf(ErrFmtMissionNegativeSteps, ErrInvalidConfig, def.ID)
	}

	return nil
}

func validateAlternativeDef(index int, alt *domain.AlternativeDefinition, missionIDs, keys map[string]bool) error {
	if alt.Key == "" {
		return fmt.Errorf(ErrFmtAlternativeAtIndexEmpty, ErrInvalidConfig, index)
	}
	if keys[alt.Key] || missionIDs[alt.Key] {
		return fmt.Errorf("%w: '%s'", ErrDuplicateID, alt.Key)
	}
	keys[alt.Key] = true

	// Every alternative must point at a known standard mission
	if !missionIDs[alt.ReplacesID] {
		return fmt.Errorf(ErrFmtAlternativeBadTarget, ErrInvalidConfig, alt.Key, alt.ReplacesID)
	}
	if alt.Title == "" {
		return fmt.Errorf(ErrFmtAlternativeEmptyTitle, ErrInvalidConfig, alt.Key)
	}
	if alt.TotalSteps <= 0 {
		return fmt.Errorf(ErrFmtAlternativeBadSteps, ErrInvalidConfig, alt.Key)
	}
	if alt.XPReward < 0 {
		return fmt.Errorf(ErrFmtAlternativeNegativeXP, ErrInvalidConfig, alt.Key)
	}

	return nil
}

func validateAchievements(config *AchievementsConfig) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	validMetrics := map[domain.AchievementMetric]bool{
		domain.MetricStreak:            true,
		domain.MetricLevel:             true,
		domain.MetricXP:                true,
		domain.MetricMissionsCompleted: true,
		domain.MetricDosesTaken:        true,
	}

	ids := make(map[string]bool, len(config.Achievements))
	for i := range config.Achievements {
		def := &config.Achievements[i]

		if def.ID == "" {
			return fmt.Errorf(ErrFmtAchievementAtIndexEmpty, ErrInvalidConfig, i)
		}
		if ids[def.ID] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateID, def.ID)
		}
		ids[def.ID] = true

		if def.Title == "" {
			return fmt.Errorf(ErrFmtAchievementEmptyTitle, ErrInvalidConfig, def.ID)
		}
		if !validMetrics[def.Metric] {
			return fmt.Errorf(ErrFmtAchievementBadMetric, ErrInvalidConfig, def.ID, def.Metric)
		}
		if def.Threshold <= 0 {
			return fmt.Errorf(ErrFmtAchievementBadThreshold, ErrInvalidConfig, def.ID)
		}
	}

	return nil
}
