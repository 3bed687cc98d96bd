// Package character implements player characters: ability scores, skills,
// races, classes, feats, equipment handling, status effects, experience,
// and the derived-stat recomputation that ties them together.
package character

import (
	"github.com/chronicler-rpg/engine/internal/modifiers"
	"github.com/chronicler-rpg/engine/internal/rules"
)

// AbilityScore is a single ability with its authored base score and the
// derived effective score and modifier
type AbilityScore struct {
	Name      string `json:"name"`
	BaseScore int    `json:"base_score"`
	Score     int    `json:"score"`
	Modifier  int    `json:"modifier"`
}

// Skill is a trained skill entry on a character sheet
type Skill struct {
	Name        string                `json:"name"`
	KeyAbility  string                `json:"key_ability"`
	Proficiency rules.ProficiencyTier `json:"proficiency"`
}

// Race is authored race content: flat bonuses, traits, proficiency packs,
// and level-gated progression
type Race struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	SubraceID        string                `json:"subrace_id,omitempty"`
	AbilityBonuses   map[string]int        `json:"ability_bonuses,omitempty"`
	Bonuses          map[string]int        `json:"bonuses,omitempty"`
	Traits           []string              `json:"traits,omitempty"`
	ProficiencyPacks map[string][]string   `json:"proficiency_packs,omitempty"`
	Progression      modifiers.Progression `json:"feature_progression,omitempty"`
	ChoiceSlots      map[string]int        `json:"choice_slots,omitempty"`
}

// Contributes implements the modifier source contract with the race's flat
// bonuses, ability bonuses included
func (r *Race) Contributes() map[string]int {
	return mergeBonuses(r.AbilityBonuses, r.Bonuses)
}

// Class is authored class content. SaveProficiencies accepts either ability
// names or the classic fortitude/reflex/will aliases.
type Class struct {
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	ArchetypeID       string                `json:"archetype_id,omitempty"`
	HitDie            int                   `json:"hit_die"`
	Tags              []string              `json:"tags,omitempty"`
	SaveProficiencies []string              `json:"save_proficiencies,omitempty"`
	AbilityBonuses    map[string]int        `json:"ability_bonuses,omitempty"`
	Bonuses           map[string]int        `json:"bonuses,omitempty"`
	ProficiencyPacks  map[string][]string   `json:"proficiency_packs,omitempty"`
	Progression       modifiers.Progression `json:"feature_progression,omitempty"`
	ChoiceSlots       map[string]int        `json:"choice_slots,omitempty"`
}

// Contributes implements the modifier source contract with the class's flat
// bonuses, ability bonuses included
func (c *Class) Contributes() map[string]int {
	return mergeBonuses(c.AbilityBonuses, c.Bonuses)
}

func mergeBonuses(sources ...map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, source := range sources {
		for key, value := range source {
			merged[key] += value
		}
	}
	return merged
}
