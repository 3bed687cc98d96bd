package character

import (
	"strings"

	"github.com/chronicler-rpg/engine/internal/errors"
)

// FeatStackingRule controls whether a feat may be taken more than once
type FeatStackingRule string

const (
	FeatUnique    FeatStackingRule = "unique"
	FeatStackable FeatStackingRule = "stackable"
)

// Feat is a discrete character option with prerequisites and a bonus map
type Feat struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description,omitempty"`
	Modifiers          map[string]int   `json:"modifiers,omitempty"`
	RequiredLevel      int              `json:"required_level,omitempty"`
	RequiredAbilities  map[string]int   `json:"required_abilities,omitempty"`
	RequiredClasses    []string         `json:"required_classes,omitempty"`
	RequiredArchetypes []string         `json:"required_archetypes,omitempty"`
	StackingRule       FeatStackingRule `json:"stacking_rule,omitempty"`
}

// Contributes implements the modifier source contract
func (f *Feat) Contributes() map[string]int {
	return f.Modifiers
}

// featValidator checks feat prerequisites and stacking against a character.
// Validation is all or nothing; a failing feat leaves the character untouched.
type featValidator struct {
	character *PlayerCharacter
}

func (v *featValidator) validate(feat *Feat, existing []*Feat) error {
	if err := v.validatePrerequisites(feat); err != nil {
		return err
	}
	return v.validateStacking(feat, existing)
}

func (v *featValidator) validatePrerequisites(feat *Feat) error {
	pc := v.character

	if feat.RequiredLevel > 0 && pc.Level < feat.RequiredLevel {
		return errors.Validationf("%s requires level %d", feat.Name, feat.RequiredLevel)
	}

	for ability, minimum := range feat.RequiredAbilities {
		score := 0
		if current, ok := pc.Abilities[ability]; ok {
			score = current.Score
		}
		if score < minimum {
			return errors.Validationf("%s requires %s %d (has %d)", feat.Name, ability, minimum, score)
		}
	}

	if len(feat.RequiredClasses) > 0 && !containsString(feat.RequiredClasses, pc.Class.ID) {
		return errors.Validationf("%s requires one of classes: %s", feat.Name, strings.Join(feat.RequiredClasses, ", "))
	}

	if len(feat.RequiredArchetypes) > 0 && !containsString(feat.RequiredArchetypes, pc.Class.ArchetypeID) {
		return errors.Validationf("%s requires archetype in %s", feat.Name, strings.Join(feat.RequiredArchetypes, ", "))
	}

	return nil
}

func (v *featValidator) validateStacking(feat *Feat, existing []*Feat) error {
	if feat.StackingRule == FeatStackable {
		return nil
	}
	for _, taken := range existing {
		if taken.ID == feat.ID {
			return errors.Validationf("%s can only be taken once", feat.Name)
		}
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
