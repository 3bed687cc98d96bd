package creature

import (
	"github.com/chronicler-rpg/engine/internal/character"
	"github.com/chronicler-rpg/engine/internal/effects"
	"github.com/chronicler-rpg/engine/internal/errors"
	"github.com/chronicler-rpg/engine/internal/modifiers"
	"github.com/chronicler-rpg/engine/internal/rules"
)

// Creature is an authored stat block with average-roll derived stats.
// Authored templates are immutable in play; scaling and combat damage happen
// on copies produced by Clone or ApplyTier.
type Creature struct {
	ID                string                             `json:"id"`
	Name              string                             `json:"name"`
	Level             int                                `json:"level"`
	Role              string                             `json:"role,omitempty"`
	HitDie            int                                `json:"hit_die"`
	BaseArmorClass    int                                `json:"base_armor_class"`
	Abilities         map[string]*character.AbilityScore `json:"abilities"`
	Actions           []*Action                          `json:"actions,omitempty"`
	Alignment         string                             `json:"alignment,omitempty"`
	Traits            []string                           `json:"traits,omitempty"`
	Tiers             []*TierTemplate                    `json:"tiers,omitempty"`
	SaveProficiencies []string                           `json:"save_proficiencies,omitempty"`
	Speed             int                                `json:"speed"`

	// Derived stats, recomputed after every structural change
	HitPoints        int            `json:"hit_points"`
	CurrentHitPoints int            `json:"current_hit_points"`
	Alive            bool           `json:"is_alive"`
	ArmorClass       int            `json:"armor_class"`
	ProficiencyBonus int            `json:"proficiency_bonus"`
	Saves            map[string]int `json:"saves"`

	AppliedTier   string         `json:"applied_tier,omitempty"`
	TierModifiers map[string]int `json:"tier_modifiers,omitempty"`

	Effects *effects.Store `json:"-"`

	hpInitialized bool
}

// Config holds the authored inputs for a creature template
type Config struct {
	ID                string
	Name              string
	Level             int
	Role              string
	HitDie            int
	ArmorClass        int
	Abilities         map[string]int
	Actions           []*Action
	Alignment         string
	Traits            []string
	Tiers             []*TierTemplate
	SaveProficiencies []string
	Speed             int
}

// New creates a creature from authored content and computes its derived stats
func New(cfg *Config) (*Creature, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if cfg.ID == "" {
		return nil, errors.InvalidArgument("creature id is required")
	}
	if cfg.HitDie < 1 {
		return nil, errors.InvalidArgument("hit die must be positive")
	}

	level := cfg.Level
	if level < 1 {
		level = 1
	}
	speed := cfg.Speed
	if speed == 0 {
		speed = 30
	}

	abilities := make(map[string]*character.AbilityScore, len(rules.Abilities))
	for _, name := range rules.Abilities {
		score := 10
		if authored, ok := cfg.Abilities[name]; ok {
			score = authored
		}
		abilities[name] = &character.AbilityScore{
			Name:      name,
			BaseScore: score,
			Score:     score,
			Modifier:  rules.AbilityModifier(score),
		}
	}

	c := &Creature{
		ID:                cfg.ID,
		Name:              cfg.Name,
		Level:             level,
		Role:              cfg.Role,
		HitDie:            cfg.HitDie,
		BaseArmorClass:    cfg.ArmorClass,
		Abilities:         abilities,
		Actions:           cfg.Actions,
		Alignment:         cfg.Alignment,
		Traits:            cfg.Traits,
		Tiers:             cfg.Tiers,
		SaveProficiencies: cfg.SaveProficiencies,
		Speed:             speed,
		Alive:             true,
		Effects:           effects.NewStore(),
	}

	c.Recompute()
	c.CurrentHitPoints = c.HitPoints
	c.hpInitialized = true
	return c, nil
}

// Recompute rebuilds the derived stats from the authored values, the applied
// tier, and active status effects
func (c *Creature) Recompute() {
	aggregated := c.collectModifiers()

	for name, ability := range c.Abilities {
		ability.Score = ability.BaseScore + aggregated.Get(name)
		ability.Modifier = rules.AbilityModifier(ability.Score)
	}

	level := c.Level
	if level < 1 {
		level = 1
	}
	c.ProficiencyBonus = rules.ProficiencyBonus(level)

	conMod := c.AbilityModifier(rules.AbilityConstitution)
	dexMod := c.AbilityModifier(rules.AbilityDexterity)
	wisMod := c.AbilityModifier(rules.AbilityWisdom)

	perLevel := c.HitDie/2 + 1 + conMod
	if perLevel < 1 {
		perLevel = 1
	}
	c.HitPoints = perLevel*level + aggregated.Get(modifiers.KeyHitPoints)

	c.ArmorClass = c.BaseArmorClass + aggregated.Get(modifiers.KeyArmorClass) + dexMod

	c.Saves = map[string]int{
		rules.SaveFortitude: c.saveModifier(rules.SaveFortitude, conMod, aggregated),
		rules.SaveReflex:    c.saveModifier(rules.SaveReflex, dexMod, aggregated),
		rules.SaveWill:      c.saveModifier(rules.SaveWill, wisMod, aggregated),
	}

	if c.hpInitialized {
		if c.CurrentHitPoints > c.HitPoints {
			c.CurrentHitPoints = c.HitPoints
		}
		if c.CurrentHitPoints <= 0 {
			c.CurrentHitPoints = 0
			c.Alive = false
		}
	}
}

func (c *Creature) saveModifier(save string, abilityMod int, aggregated modifiers.Map) int {
	total := abilityMod + aggregated.Get(save)
	for _, proficient := range c.SaveProficiencies {
		if proficient == save {
			total += c.ProficiencyBonus
			break
		}
	}
	return total
}

func (c *Creature) collectModifiers() modifiers.Map {
	sources := []modifiers.Source{modifiers.FromMap(c.TierModifiers)}
	if c.Effects != nil {
		sources = append(sources, c.Effects)
	}
	return modifiers.Aggregate(sources...)
}

// AddStatusEffect applies a status effect, combining with an existing effect
// of the same id, and recomputes
func (c *Creature) AddStatusEffect(effect *effects.StatusEffect) {
	c.Effects.Add(effect)
	c.Recompute()
}

// TickStatusEffects advances the matching duration clock and recomputes when
// anything changed
func (c *Creature) TickStatusEffects(tickType effects.DurationType) {
	if c.Effects.Tick(tickType) {
		c.Recompute()
	}
}

// DispelStatusEffects removes every dispellable effect for the trigger and
// recomputes when anything changed
func (c *Creature) DispelStatusEffects(trigger effects.DispelCondition) {
	if c.Effects.Dispel(trigger) {
		c.Recompute()
	}
}

// ApplyDamage reduces current hit points, clamping at zero and marking the
// creature dead when it bottoms out
func (c *Creature) ApplyDamage(amount int) {
	if !c.Alive || amount <= 0 {
		return
	}
	c.CurrentHitPoints -= amount
	if c.CurrentHitPoints <= 0 {
		c.CurrentHitPoints = 0
		c.Alive = false
	}
}

// Heal restores current hit points up to the maximum. Dead creatures cannot
// be healed.
func (c *Creature) Heal(amount int) {
	if !c.Alive || amount <= 0 {
		return
	}
	c.CurrentHitPoints += amount
	if c.CurrentHitPoints > c.HitPoints {
		c.CurrentHitPoints = c.HitPoints
	}
}

// Clone returns a deep copy of the creature. The copy owns its abilities,
// actions, tier state, and effects.
func (c *Creature) Clone() *Creature {
	clone := *c

	clone.Abilities = make(map[string]*character.AbilityScore, len(c.Abilities))
	for name, ability := range c.Abilities {
		copied := *ability
		clone.Abilities[name] = &copied
	}

	clone.Actions = make([]*Action, 0, len(c.Actions))
	for _, action := range c.Actions {
		clone.Actions = append(clone.Actions, action.Clone())
	}

	clone.Traits = append([]string(nil), c.Traits...)
	clone.Tiers = append([]*TierTemplate(nil), c.Tiers...)
	clone.SaveProficiencies = append([]string(nil), c.SaveProficiencies...)

	if c.TierModifiers != nil {
		clone.TierModifiers = make(map[string]int, len(c.TierModifiers))
		for key, value := range c.TierModifiers {
			clone.TierModifiers[key] = value
		}
	}
	if c.Saves != nil {
		clone.Saves = make(map[string]int, len(c.Saves))
		for key, value := range c.Saves {
			clone.Saves[key] = value
		}
	}
	if c.Effects != nil {
		clone.Effects = c.Effects.Clone()
	}

	return &clone
}

// AvailableTiers returns the implicit base tier followed by either the
// supplied extra tiers or the creature's own
func (c *Creature) AvailableTiers(extra []*TierTemplate) []*TierTemplate {
	tiers := []*TierTemplate{{Name: "base", Difficulty: DifficultyStandard}}
	if len(extra) > 0 {
		return append(tiers, extra...)
	}
	return append(tiers, c.Tiers...)
}

// SelectTierForLevel picks the tier whose effective level lands closest to
// the target, trying difficulties in the preference order for the requested
// encounter difficulty
func (c *Creature) SelectTierForLevel(targetLevel int, difficulty string, extra []*TierTemplate) *TierTemplate {
	tiers := c.AvailableTiers(extra)

	preferred, ok := tierPreferences[difficulty]
	if !ok {
		preferred = []string{difficulty, DifficultyStandard, DifficultyHard, DifficultyEasy}
	}

	for _, wanted := range preferred {
		if tier := c.closestTier(tiers, targetLevel, wanted); tier != nil {
			return tier
		}
	}
	return c.closestTier(tiers, targetLevel, "")
}

// closestTier returns the tier with difficulty wanted (any difficulty when
// wanted is empty) minimizing the distance to the target level. Ties keep
// the earlier tier.
func (c *Creature) closestTier(tiers []*TierTemplate, targetLevel int, wanted string) *TierTemplate {
	var best *TierTemplate
	bestDistance := 0
	for _, tier := range tiers {
		if wanted != "" && tier.Difficulty != wanted {
			continue
		}
		distance := tier.EffectiveLevel(c.Level) - targetLevel
		if distance < 0 {
			distance = -distance
		}
		if best == nil || distance < bestDistance {
			best = tier
			bestDistance = distance
		}
	}
	return best
}

// ApplyTier returns a combat-ready copy of the creature with the tier's
// adjustments applied and current hit points reset to the new maximum. The
// receiver is left untouched.
func (c *Creature) ApplyTier(tier *TierTemplate) *Creature {
	tiered := c.Clone()
	tiered.AppliedTier = tier.Name
	tiered.Level = tier.EffectiveLevel(tiered.Level)
	tiered.TierModifiers = tier.AsModifiers()
	tiered.Recompute()

	if tier.AttackAdjustment != 0 || tier.DamageAdjustment != 0 {
		for _, action := range tiered.Actions {
			action.ToHitBonus += tier.AttackAdjustment
			action.DamageBonus += tier.DamageAdjustment
		}
	}

	tiered.CurrentHitPoints = tiered.HitPoints
	tiered.Alive = tiered.CurrentHitPoints > 0
	return tiered
}

// Combatant surface

// CombatantID identifies the creature inside an encounter
func (c *Creature) CombatantID() string { return c.ID }

// CombatantName is the display name used in combat logs
func (c *Creature) CombatantName() string { return c.Name }

// AbilityModifier returns the effective modifier for an ability, zero for an
// unknown name
func (c *Creature) AbilityModifier(ability string) int {
	if score, ok := c.Abilities[ability]; ok {
		return score.Modifier
	}
	return 0
}

// Proficiency returns the derived proficiency bonus
func (c *Creature) Proficiency() int { return c.ProficiencyBonus }

// DexterityModifier returns the effective dexterity modifier
func (c *Creature) DexterityModifier() int {
	return c.AbilityModifier(rules.AbilityDexterity)
}

// InitiativeModifier is added to the initiative die roll
func (c *Creature) InitiativeModifier() int {
	return c.DexterityModifier() + c.ProficiencyBonus
}

// EffectiveArmorClass returns the derived armor class
func (c *Creature) EffectiveArmorClass() int { return c.ArmorClass }

// IsConscious reports whether the creature can act in combat
func (c *Creature) IsConscious() bool {
	return c.Alive && c.CurrentHitPoints > 0
}
