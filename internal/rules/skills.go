package rules

// ProficiencyTier is a skill training tier. Tiers multiply the proficiency
// bonus when computing skill modifiers.
type ProficiencyTier string

const (
	ProficiencyUntrained ProficiencyTier = "untrained"
	ProficiencyTrained   ProficiencyTier = "trained"
	ProficiencyExpert    ProficiencyTier = "expert"
)

// Multiplier returns the proficiency bonus multiplier for the tier.
// Unrecognized tiers count as untrained.
func (t ProficiencyTier) Multiplier() int {
	switch t {
	case ProficiencyTrained:
		return 1
	case ProficiencyExpert:
		return 2
	default:
		return 0
	}
}

// SkillIDs lists every skill in display order
var SkillIDs = []string{
	"acrobatics",
	"animal_handling",
	"arcana",
	"athletics",
	"deception",
	"history",
	"insight",
	"intimidation",
	"investigation",
	"medicine",
	"nature",
	"perception",
	"performance",
	"persuasion",
	"religion",
	"sleight_of_hand",
	"stealth",
	"survival",
}

// SkillToAbility maps each skill to its governing ability
var SkillToAbility = map[string]string{
	"acrobatics":      AbilityDexterity,
	"animal_handling": AbilityWisdom,
	"arcana":          AbilityIntelligence,
	"athletics":       AbilityStrength,
	"deception":       AbilityCharisma,
	"history":         AbilityIntelligence,
	"insight":         AbilityWisdom,
	"intimidation":    AbilityCharisma,
	"investigation":   AbilityIntelligence,
	"medicine":        AbilityWisdom,
	"nature":          AbilityIntelligence,
	"perception":      AbilityWisdom,
	"performance":     AbilityCharisma,
	"persuasion":      AbilityCharisma,
	"religion":        AbilityIntelligence,
	"sleight_of_hand": AbilityDexterity,
	"stealth":         AbilityDexterity,
	"survival":        AbilityWisdom,
}

// IsSkill reports whether name is a registered skill
func IsSkill(name string) bool {
	_, ok := SkillToAbility[name]
	return ok
}
