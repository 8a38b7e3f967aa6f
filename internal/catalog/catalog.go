// Package catalog holds the static mission and achievement registry. It is
// loaded from JSON at startup, validated once, and read-only afterwards, so
// lookups need no locking.
package catalog

import (
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

// Catalog provides lookups over the validated mission and achievement
// definitions.
type Catalog struct {
	missions        map[string]domain.MissionDefinition
	missionOrder    []string
	alternatives    map[string]domain.AlternativeDefinition
	altsByMission   map[string][]domain.AlternativeDefinition
	achievements    map[string]domain.AchievementDefinition
	achievementList []domain.AchievementDefinition
}

// New builds a catalog from already-validated definitions. Production code
// goes through Loader, which validates first; New is for wiring tests and
// tooling that construct definitions directly.
func New(missions []domain.MissionDefinition, alternatives []domain.AlternativeDefinition, achievements []domain.AchievementDefinition) *Catalog {
	c := &Catalog{
		missions:      make(map[string]domain.MissionDefinition, len(missions)),
		missionOrder:  make([]string, 0, len(missions)),
		alternatives:  make(map[string]domain.AlternativeDefinition, len(alternatives)),
		altsByMission: make(map[string][]domain.AlternativeDefinition),
		achievements:  make(map[string]domain.AchievementDefinition, len(achievements)),
	}

	for _, def := range missions {
		c.missions[def.ID] = def
		c.missionOrder = append(c.missionOrder, def.ID)
	}
	for _, alt := range alternatives {
		c.alternatives[alt.Key] = alt
		c.altsByMission[alt.ReplacesID] = append(c.altsByMission[alt.ReplacesID], alt)
	}
	for _, def := range achievements {
		c.achievements[def.ID] = def
	}
	c.achievementList = achievements

	return c
}

// Missions returns all mission definitions in catalog order.
func (c *Catalog) Missions() []domain.MissionDefinition {
	out := make([]domain.MissionDefinition, 0, len(c.missionOrder))
	for _, id := range c.missionOrder {
		out = append(out, c.missions[id])
	}
	return out
}

// Mission returns the definition for the given mission id.
func (c *Catalog) Mission(missionID string) (domain.MissionDefinition, error) {
	def, ok := c.missions[missionID]
	if !ok {
		return domain.MissionDefinition{}, domain.ErrMissionNotFound
	}
	return def, nil
}

// Alternative returns the alternative definition for the given key.
func (c *Catalog) Alternative(key string) (domain.AlternativeDefinition, error) {
	alt, ok := c.alternatives[key]
	if !ok {
		return domain.AlternativeDefinition{}, domain.ErrAlternativeNotFound
	}
	return alt, nil
}

// AlternativesFor returns the alternatives that can replace the given
// mission, in catalog order. The slice is empty for missions with none.
func (c *Catalog) AlternativesFor(missionID string) []domain.AlternativeDefinition {
	return c.altsByMission[missionID]
}

// Achievements returns all achievement definitions in catalog order.
func (c *Catalog) Achievements() []domain.AchievementDefinition {
	return c.achievementList
}

// Achievement returns the definition for the given achievement id.
func (c *Catalog) Achievement(achievementID string) (domain.AchievementDefinition, bool) {
	def, ok := c.achievements[achievementID]
	return def, ok
}
