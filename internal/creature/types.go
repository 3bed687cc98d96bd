// Package creature implements authored creature stat blocks, their combat
// actions, and the tier templates used to serve the same creature at
// different difficulty levels.
package creature

// Action is a creature attack profile
type Action struct {
	Name          string   `json:"name"`
	AttackAbility string   `json:"attack_ability"`
	ToHitBonus    int      `json:"to_hit_bonus"`
	DamageDice    string   `json:"damage_dice"`
	DamageBonus   int      `json:"damage_bonus"`
	Tags          []string `json:"tags,omitempty"`
}

// Clone returns a copy of the action
func (a *Action) Clone() *Action {
	clone := *a
	clone.Tags = append([]string(nil), a.Tags...)
	return &clone
}

// Difficulty labels for tiers and encounters
const (
	DifficultyEasy     = "easy"
	DifficultyStandard = "standard"
	DifficultyHard     = "hard"
	DifficultyDeadly   = "deadly"
)

// TierTemplate is an authored alternate version of a creature: a named bundle
// of level, attack, damage, hit point, and armor class adjustments.
type TierTemplate struct {
	Name                 string `json:"name"`
	Difficulty           string `json:"difficulty"`
	LevelAdjustment      int    `json:"level_adjustment,omitempty"`
	AttackAdjustment     int    `json:"attack_adjustment,omitempty"`
	DamageAdjustment     int    `json:"damage_adjustment,omitempty"`
	HitPointAdjustment   int    `json:"hit_point_adjustment,omitempty"`
	ArmorClassAdjustment int    `json:"armor_class_adjustment,omitempty"`
	Notes                string `json:"notes,omitempty"`
}

// EffectiveLevel returns the level the tier lands on from a base level,
// floored at 1
func (t *TierTemplate) EffectiveLevel(baseLevel int) int {
	level := baseLevel + t.LevelAdjustment
	if level < 1 {
		level = 1
	}
	return level
}

// AsModifiers expresses the flat adjustments as a bonus map for the
// aggregation pass
func (t *TierTemplate) AsModifiers() map[string]int {
	adjusted := make(map[string]int, 2)
	if t.HitPointAdjustment != 0 {
		adjusted["hit_points"] = t.HitPointAdjustment
	}
	if t.ArmorClassAdjustment != 0 {
		adjusted["armor_class"] = t.ArmorClassAdjustment
	}
	return adjusted
}

// tierPreferences orders which tier difficulties to try for a requested
// encounter difficulty
var tierPreferences = map[string][]string{
	DifficultyEasy:     {DifficultyEasy, "less_difficult", DifficultyStandard, DifficultyHard},
	DifficultyStandard: {DifficultyStandard, DifficultyHard, DifficultyEasy, DifficultyDeadly},
	DifficultyHard:     {DifficultyHard, DifficultyDeadly, DifficultyStandard, DifficultyEasy},
	DifficultyDeadly:   {DifficultyDeadly, DifficultyHard, DifficultyStandard, DifficultyEasy},
}
