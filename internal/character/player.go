package character

import (
	"github.com/chronicler-rpg/engine/internal/effects"
	"github.com/chronicler-rpg/engine/internal/errors"
	"github.com/chronicler-rpg/engine/internal/item"
	"github.com/chronicler-rpg/engine/internal/modifiers"
	"github.com/chronicler-rpg/engine/internal/rules"
)

// PlayerCharacter is a fully hydrated player character. Derived fields are
// owned by Recompute and overwritten on every structural change; callers
// mutate authored state through the methods, never the derived fields.
type PlayerCharacter struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Background string                   `json:"background,omitempty"`
	Abilities  map[string]*AbilityScore `json:"abilities"`
	Skills     map[string]*Skill        `json:"skills"`
	Race       *Race                    `json:"race"`
	Class      *Class                   `json:"class"`
	Feats      []*Feat                  `json:"feats,omitempty"`

	Equipment   map[item.Slot]*item.Equipment `json:"equipment,omitempty"`
	Consumables []*item.Consumable            `json:"consumables,omitempty"`
	Effects     *effects.Store                `json:"-"`

	Level int `json:"level"`
	XP    int `json:"xp"`

	// Derived stats, recomputed after every structural change
	HitPoints         int             `json:"hit_points"`
	CurrentHitPoints  int             `json:"current_hit_points"`
	Alive             bool            `json:"is_alive"`
	ArmorClass        int             `json:"armor_class"`
	Saves             map[string]int  `json:"saves"`
	SaveProficiencies map[string]bool `json:"save_proficiencies,omitempty"`
	Initiative        int             `json:"initiative"`
	ProficiencyBonus  int             `json:"proficiency_bonus"`
	hpInitialized     bool

	GrantedFeatures    []string            `json:"granted_features,omitempty"`
	Spellcasting       map[string]int      `json:"spellcasting,omitempty"`
	ChoiceSlots        map[string]int      `json:"choice_slots,omitempty"`
	AvailablePacks     map[string][]string `json:"available_proficiency_packs,omitempty"`
	SkillProficiencies map[string]bool     `json:"skill_proficiencies,omitempty"`

	aggregated modifiers.Map
}

// Config holds the authored inputs for creating a player character
type Config struct {
	ID            string
	Name          string
	Background    string
	BaseAbilities map[string]int
	Skills        map[string]rules.ProficiencyTier
	Race          *Race
	Class         *Class
	Feats         []*Feat
	Level         int
	XP            int
}

// New creates a player character from authored content, validates its feats
// in order, and computes the initial derived stats
func New(cfg *Config) (*PlayerCharacter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if cfg.ID == "" {
		return nil, errors.InvalidArgument("character id is required")
	}
	if cfg.Race == nil {
		return nil, errors.InvalidArgument("race is required")
	}
	if cfg.Class == nil {
		return nil, errors.InvalidArgument("class is required")
	}

	level := cfg.Level
	if level < 1 {
		level = 1
	}

	abilities := make(map[string]*AbilityScore, len(rules.Abilities))
	for _, name := range rules.Abilities {
		score := 10
		if base, ok := cfg.BaseAbilities[name]; ok {
			score = base
		}
		abilities[name] = &AbilityScore{
			Name:      name,
			BaseScore: score,
			Score:     score,
			Modifier:  rules.AbilityModifier(score),
		}
	}

	skills := make(map[string]*Skill, len(cfg.Skills))
	for name, tier := range cfg.Skills {
		ability, ok := rules.SkillToAbility[name]
		if !ok {
			return nil, errors.InvalidArgumentf("unknown skill %q", name)
		}
		skills[name] = &Skill{Name: name, KeyAbility: ability, Proficiency: tier}
	}

	pc := &PlayerCharacter{
		ID:         cfg.ID,
		Name:       cfg.Name,
		Background: cfg.Background,
		Abilities:  abilities,
		Skills:     skills,
		Race:       cfg.Race,
		Class:      cfg.Class,
		Equipment:  make(map[item.Slot]*item.Equipment),
		Effects:    effects.NewStore(),
		Level:      level,
		XP:         cfg.XP,
		Alive:      true,
	}

	validator := &featValidator{character: pc}
	for _, feat := range cfg.Feats {
		if err := validator.validate(feat, pc.Feats); err != nil {
			return nil, err
		}
		pc.Feats = append(pc.Feats, feat)
	}

	pc.Recompute()
	pc.CurrentHitPoints = pc.HitPoints
	pc.hpInitialized = true
	return pc, nil
}

// Recompute rebuilds every derived stat from the authored state. The pass is
// idempotent; ability scores always rebuild from their base scores.
func (pc *PlayerCharacter) Recompute() {
	aggregated := pc.collectModifiers()

	acc := modifiers.NewAccumulation()
	acc.Collect(pc.Race.Progression, pc.Level)
	acc.Collect(pc.Class.Progression, pc.Level)
	aggregated.Merge(acc.Modifiers)
	pc.aggregated = aggregated

	pc.GrantedFeatures = append(append([]string{}, pc.Race.Traits...), acc.Features...)
	pc.Spellcasting = acc.SpellSlots
	pc.ChoiceSlots = mergeBonuses(pc.Race.ChoiceSlots, pc.Class.ChoiceSlots, acc.ChoiceSlots)
	pc.AvailablePacks = mergePacks(pc.Race.ProficiencyPacks, pc.Class.ProficiencyPacks)
	pc.SkillProficiencies = pc.collectSkillProficiencies()

	for name, ability := range pc.Abilities {
		ability.Score = ability.BaseScore + aggregated.Get(name)
		ability.Modifier = rules.AbilityModifier(ability.Score)
	}

	pc.ProficiencyBonus = rules.ProficiencyBonus(pc.Level)

	conMod := pc.AbilityModifier(rules.AbilityConstitution)
	dexMod := pc.AbilityModifier(rules.AbilityDexterity)

	perLevel := pc.Class.HitDie + conMod
	if perLevel < 1 {
		perLevel = 1
	}
	pc.HitPoints = pc.Level*perLevel + aggregated.Get(modifiers.KeyHitPoints)

	pc.ArmorClass = 10 + dexMod + aggregated.Get(modifiers.KeyArmorClass)

	pc.SaveProficiencies = normalizeSaveProficiencies(pc.Class.SaveProficiencies)
	pc.Saves = pc.computeSaves(aggregated)

	pc.Initiative = dexMod + pc.ProficiencyBonus + aggregated.Get(modifiers.KeyInitiative)

	if pc.hpInitialized {
		if pc.CurrentHitPoints > pc.HitPoints {
			pc.CurrentHitPoints = pc.HitPoints
		}
		if pc.CurrentHitPoints <= 0 {
			pc.CurrentHitPoints = 0
			pc.Alive = false
		}
	}
}

// collectModifiers folds every bonus source in the fixed precedence order:
// race, class, feats, equipment, status effects
func (pc *PlayerCharacter) collectModifiers() modifiers.Map {
	sources := make([]modifiers.Source, 0, 4+len(pc.Feats)+len(pc.Equipment))
	sources = append(sources, pc.Race, pc.Class)
	for _, feat := range pc.Feats {
		sources = append(sources, feat)
	}
	for _, equipped := range pc.Equipment {
		sources = append(sources, equipped)
	}
	if pc.Effects != nil {
		sources = append(sources, pc.Effects)
	}
	return modifiers.Aggregate(sources...)
}

func (pc *PlayerCharacter) collectSkillProficiencies() map[string]bool {
	proficient := make(map[string]bool)
	for name, skill := range pc.Skills {
		if skill.Proficiency != rules.ProficiencyUntrained {
			proficient[name] = true
		}
	}
	for _, pack := range []map[string][]string{pc.Race.ProficiencyPacks, pc.Class.ProficiencyPacks} {
		for _, entries := range pack {
			for _, entry := range entries {
				if rules.IsSkill(entry) {
					proficient[entry] = true
				}
			}
		}
	}
	return proficient
}

// computeSaves fills one entry per ability plus the classic aliases. Save
// bonuses aggregate under "<ability>_save" and under the alias name where one
// exists; the alias entry always mirrors its governing ability.
func (pc *PlayerCharacter) computeSaves(aggregated modifiers.Map) map[string]int {
	aliasOf := make(map[string]string, len(rules.SaveToAbility))
	for alias, ability := range rules.SaveToAbility {
		aliasOf[ability] = alias
	}

	saves := make(map[string]int, len(rules.Abilities)+len(rules.SaveToAbility))
	for _, ability := range rules.Abilities {
		save := pc.AbilityModifier(ability)
		if pc.SaveProficiencies[ability] {
			save += pc.ProficiencyBonus
		}
		save += aggregated.Get(ability + "_save")
		if alias, ok := aliasOf[ability]; ok {
			save += aggregated.Get(alias)
		}
		saves[ability] = save
	}
	for alias, ability := range rules.SaveToAbility {
		saves[alias] = saves[ability]
	}
	return saves
}

// normalizeSaveProficiencies resolves classic aliases to their governing
// abilities so proficiency matches either spelling
func normalizeSaveProficiencies(entries []string) map[string]bool {
	proficient := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if ability, ok := rules.SaveToAbility[entry]; ok {
			proficient[ability] = true
			continue
		}
		if rules.IsAbility(entry) {
			proficient[entry] = true
		}
	}
	return proficient
}

func mergePacks(packs ...map[string][]string) map[string][]string {
	merged := make(map[string][]string)
	for _, pack := range packs {
		for name, entries := range pack {
			merged[name] = entries
		}
	}
	return merged
}

// AbilityModifier returns the effective modifier for an ability, zero for an
// unknown name
func (pc *PlayerCharacter) AbilityModifier(ability string) int {
	if score, ok := pc.Abilities[ability]; ok {
		return score.Modifier
	}
	return 0
}

// AbilityScoreOf returns the effective score for an ability, zero for an
// unknown name
func (pc *PlayerCharacter) AbilityScoreOf(ability string) int {
	if score, ok := pc.Abilities[ability]; ok {
		return score.Score
	}
	return 0
}

// SkillModifier returns the effective modifier for a skill: governing ability
// modifier, plus the proficiency bonus scaled by training tier, plus any
// skill-keyed aggregated bonus
func (pc *PlayerCharacter) SkillModifier(skillName string) (int, error) {
	ability, ok := rules.SkillToAbility[skillName]
	if !ok {
		return 0, errors.InvalidArgumentf("unknown skill %q", skillName)
	}

	tier := rules.ProficiencyUntrained
	if skill, found := pc.Skills[skillName]; found {
		tier = skill.Proficiency
	}

	modifier := pc.AbilityModifier(ability)
	modifier += tier.Multiplier() * pc.ProficiencyBonus
	modifier += pc.aggregated.Get(skillName)
	return modifier, nil
}

// IsSkillProficient reports whether the character counts as trained in the
// skill, through the sheet or a proficiency pack
func (pc *PlayerCharacter) IsSkillProficient(skillName string) bool {
	return pc.SkillProficiencies[skillName]
}

// AddFeat validates and attaches a feat, then recomputes
func (pc *PlayerCharacter) AddFeat(feat *Feat) error {
	validator := &featValidator{character: pc}
	if err := validator.validate(feat, pc.Feats); err != nil {
		return err
	}
	pc.Feats = append(pc.Feats, feat)
	pc.Recompute()
	return nil
}

// Equip validates requirements and slot conflicts, then wears the equipment.
// Validation is all or nothing; a rejected item changes no state.
func (pc *PlayerCharacter) Equip(equipment *item.Equipment) error {
	if err := pc.validateRequirements(equipment); err != nil {
		return err
	}

	if equipment.OffHandOnly && equipment.Slot != item.SlotOffHand {
		return errors.Validationf("%s can only be equipped in the off hand", equipment.Name)
	}

	switch equipment.Slot {
	case item.SlotTwoHand:
		if pc.Equipment[item.SlotMainHand] != nil || pc.Equipment[item.SlotOffHand] != nil {
			return errors.Validation("cannot equip a two-handed item while hands are occupied")
		}
	case item.SlotMainHand:
		if pc.Equipment[item.SlotTwoHand] != nil {
			return errors.Validation("cannot equip a main-hand item while using a two-handed weapon")
		}
	case item.SlotOffHand:
		if pc.Equipment[item.SlotTwoHand] != nil {
			return errors.Validation("cannot equip an off-hand item while using a two-handed weapon")
		}
		if equipment.TwoHanded {
			return errors.Validation("off-hand items cannot be two-handed")
		}
	}

	pc.Equipment[equipment.Slot] = equipment
	pc.Recompute()
	return nil
}

// Unequip removes whatever sits in the slot and recomputes. Returns nil when
// the slot was empty.
func (pc *PlayerCharacter) Unequip(slot item.Slot) *item.Equipment {
	removed := pc.Equipment[slot]
	delete(pc.Equipment, slot)
	pc.Recompute()
	return removed
}

func (pc *PlayerCharacter) validateRequirements(equipment *item.Equipment) error {
	req := equipment.Requirements
	if req.Empty() {
		return nil
	}

	if req.Level > 0 && pc.Level < req.Level {
		return errors.Validationf("%s requires level %d", equipment.Name, req.Level)
	}

	for ability, minimum := range req.Abilities {
		if score := pc.AbilityScoreOf(ability); score < minimum {
			return errors.Validationf("%s requires %s %d (has %d)", equipment.Name, ability, minimum, score)
		}
	}

	if len(req.Classes) > 0 &&
		!containsString(req.Classes, pc.Class.ID) && !containsString(req.Classes, pc.Class.Name) {
		return errors.Validationf("%s requires a different class", equipment.Name)
	}

	if len(req.ClassTags) > 0 {
		matched := false
		for _, tag := range req.ClassTags {
			if containsString(pc.Class.Tags, tag) {
				matched = true
				break
			}
		}
		if !matched {
			return errors.Validationf("%s requires a class tag among: %v", equipment.Name, req.ClassTags)
		}
	}

	return nil
}

// AddConsumable adds a consumable to the inventory
func (pc *PlayerCharacter) AddConsumable(consumable *item.Consumable) {
	pc.Consumables = append(pc.Consumables, consumable)
}

// FindConsumable returns the consumable with the given id, or nil
func (pc *PlayerCharacter) FindConsumable(id string) *item.Consumable {
	for _, consumable := range pc.Consumables {
		if consumable.ID == id {
			return consumable
		}
	}
	return nil
}

// RemoveConsumable drops the consumable with the given id from the inventory
func (pc *PlayerCharacter) RemoveConsumable(id string) {
	kept := pc.Consumables[:0]
	for _, consumable := range pc.Consumables {
		if consumable.ID != id {
			kept = append(kept, consumable)
		}
	}
	pc.Consumables = kept
}

// AddStatusEffect applies a status effect, combining with an existing effect
// of the same id, and recomputes
func (pc *PlayerCharacter) AddStatusEffect(effect *effects.StatusEffect) {
	pc.Effects.Add(effect)
	pc.Recompute()
}

// TickStatusEffects advances the matching duration clock and recomputes when
// anything changed
func (pc *PlayerCharacter) TickStatusEffects(tickType effects.DurationType) {
	if pc.Effects.Tick(tickType) {
		pc.Recompute()
	}
}

// DispelStatusEffects removes every dispellable effect for the trigger and
// recomputes when anything changed
func (pc *PlayerCharacter) DispelStatusEffects(trigger effects.DispelCondition) {
	if pc.Effects.Dispel(trigger) {
		pc.Recompute()
	}
}

// ApplyDamage reduces current hit points, clamping at zero and marking the
// character dead when it bottoms out. Dead characters take no further damage.
func (pc *PlayerCharacter) ApplyDamage(amount int) {
	if !pc.Alive || amount <= 0 {
		return
	}
	pc.CurrentHitPoints -= amount
	if pc.CurrentHitPoints <= 0 {
		pc.CurrentHitPoints = 0
		pc.Alive = false
	}
}

// Heal restores current hit points up to the maximum. Dead characters cannot
// be healed.
func (pc *PlayerCharacter) Heal(amount int) {
	if !pc.Alive || amount <= 0 {
		return
	}
	pc.CurrentHitPoints += amount
	if pc.CurrentHitPoints > pc.HitPoints {
		pc.CurrentHitPoints = pc.HitPoints
	}
}

// GainXP adds experience and levels the character through every threshold the
// new total crosses, recomputing at each level. Returns the levels attained,
// oldest first.
func (pc *PlayerCharacter) GainXP(amount int) []int {
	if amount > 0 {
		pc.XP += amount
	}

	var attained []int
	for {
		threshold, ok := rules.XPThresholdFor(pc.Level + 1)
		if !ok || pc.XP < threshold {
			break
		}
		pc.Level++
		pc.Recompute()
		attained = append(attained, pc.Level)
	}
	return attained
}

// Combatant surface

// CombatantID identifies the character inside an encounter
func (pc *PlayerCharacter) CombatantID() string { return pc.ID }

// CombatantName is the display name used in combat logs
func (pc *PlayerCharacter) CombatantName() string { return pc.Name }

// Proficiency returns the derived proficiency bonus
func (pc *PlayerCharacter) Proficiency() int { return pc.ProficiencyBonus }

// DexterityModifier returns the effective dexterity modifier
func (pc *PlayerCharacter) DexterityModifier() int {
	return pc.AbilityModifier(rules.AbilityDexterity)
}

// InitiativeModifier is added to the initiative die roll
func (pc *PlayerCharacter) InitiativeModifier() int { return pc.Initiative }

// EffectiveArmorClass returns the derived armor class
func (pc *PlayerCharacter) EffectiveArmorClass() int { return pc.ArmorClass }

// IsConscious reports whether the character can act in combat
func (pc *PlayerCharacter) IsConscious() bool {
	return pc.Alive && pc.CurrentHitPoints > 0
}
