// Package rules holds the static tables of the ruleset: ability and skill
// registries, proficiency tiers, and experience thresholds.
package rules

// Ability name constants to ensure consistency across the codebase
const (
	AbilityStrength     = "strength"
	AbilityDexterity    = "dexterity"
	AbilityConstitution = "constitution"
	AbilityIntelligence = "intelligence"
	AbilityWisdom       = "wisdom"
	AbilityCharisma     = "charisma"
)

// Abilities lists the six core abilities in display order
var Abilities = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// Classic save names kept as aliases of their governing abilities
const (
	SaveFortitude = "fortitude"
	SaveReflex    = "reflex"
	SaveWill      = "will"
)

// SaveToAbility maps the classic save aliases to the abilities that govern them
var SaveToAbility = map[string]string{
	SaveFortitude: AbilityConstitution,
	SaveReflex:    AbilityDexterity,
	SaveWill:      AbilityWisdom,
}

// IsAbility reports whether name is one of the six core abilities
func IsAbility(name string) bool {
	for _, ability := range Abilities {
		if ability == name {
			return true
		}
	}
	return false
}

// AbilityModifier derives the modifier from a score: floor((score-10)/2).
// Plain integer division truncates toward zero, so negative spreads need the
// explicit floor.
func AbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return -((-diff + 1) / 2)
	}
	return diff / 2
}

// ProficiencyBonus derives the proficiency bonus from a level: 2 + floor((level-1)/4)
func ProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	return 2 + (level-1)/4
}
