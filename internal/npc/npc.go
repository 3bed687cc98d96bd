// Package npc wraps creature stat blocks with the campaign-side state of a
// non-player character: identity, disposition, companion tracking, and the
// scaling profile that syncs the stat block to the player's level.
package npc

import (
	"github.com/chronicler-rpg/engine/internal/creature"
	"github.com/chronicler-rpg/engine/internal/rules"
)

// ScalingProfile controls how an NPC's attached stat block scales to the
// player's level
type ScalingProfile struct {
	BaseLevel             int                      `json:"base_level"`
	MinLevel              int                      `json:"min_level"`
	MaxLevel              int                      `json:"max_level"`
	AttackProgression     int                      `json:"attack_progression,omitempty"`
	DamageProgression     int                      `json:"damage_progression,omitempty"`
	DifficultyMultipliers map[string]float64       `json:"difficulty_multipliers,omitempty"`
	Tiers                 []*creature.TierTemplate `json:"tiers,omitempty"`
}

// DefaultDifficultyMultipliers is the multiplier table used when a profile
// does not author its own
var DefaultDifficultyMultipliers = map[string]float64{
	creature.DifficultyEasy:     0.75,
	creature.DifficultyStandard: 1.0,
	creature.DifficultyHard:     1.25,
	creature.DifficultyDeadly:   1.5,
}

func (p *ScalingProfile) multiplier(difficulty string) float64 {
	table := p.DifficultyMultipliers
	if len(table) == 0 {
		table = DefaultDifficultyMultipliers
	}
	if multiplier, ok := table[difficulty]; ok {
		return multiplier
	}
	return 1.0
}

// TargetLevel resolves the level the stat block should scale to for a player
// level and encounter difficulty, clamped to the profile's bounds
func (p *ScalingProfile) TargetLevel(baseLevel, playerLevel int, difficulty string) int {
	if p.BaseLevel > 0 {
		baseLevel = p.BaseLevel
	}

	delta := int(float64(playerLevel-baseLevel) * p.multiplier(difficulty))
	target := baseLevel + delta
	if target < p.MinLevel {
		target = p.MinLevel
	}
	if target > p.MaxLevel {
		target = p.MaxLevel
	}
	return target
}

// NPC is campaign-side state around an optional creature stat block. The
// wrapper is the only layer allowed to sync a stat block to player level;
// base creatures keep their authored values.
type NPC struct {
	ID          string `json:"id"`
	Archetype   string `json:"archetype,omitempty"`
	FactionID   string `json:"faction_id,omitempty"`
	Disposition string `json:"disposition,omitempty"`

	QuestHooks  []string `json:"quest_hooks,omitempty"`
	IsCompanion bool     `json:"is_companion"`

	StatBlock *creature.Creature `json:"stat_block,omitempty"`
	Scaling   *ScalingProfile    `json:"scaling,omitempty"`

	Alive     bool `json:"is_alive"`
	Level     int  `json:"level"`
	XP        int  `json:"xp"`
	AutoLevel bool `json:"auto_level"`
}

// New creates an NPC. When a stat block is attached the NPC's level tracks
// it: a zero level adopts the stat block's, a positive level overrides it.
func New(id string, statBlock *creature.Creature, scaling *ScalingProfile) *NPC {
	n := &NPC{
		ID:          id,
		Disposition: "neutral",
		IsCompanion: true,
		StatBlock:   statBlock,
		Scaling:     scaling,
		Alive:       true,
		AutoLevel:   true,
		Level:       1,
	}

	if statBlock != nil {
		if statBlock.Level > 0 {
			n.Level = statBlock.Level
		}
		n.Alive = statBlock.Alive
	}
	return n
}

// ScaledStatBlock returns a combat-ready copy of the stat block, scaled to
// the player level when the NPC carries a scaling profile. Returns nil when
// the NPC has no stat block. The attached template is never mutated.
func (n *NPC) ScaledStatBlock(playerLevel int, difficulty string) *creature.Creature {
	if n.StatBlock == nil {
		return nil
	}

	scaled := n.StatBlock.Clone()
	if n.Scaling == nil {
		scaled.Recompute()
		if n.Alive {
			scaled.CurrentHitPoints = scaled.HitPoints
		} else {
			scaled.CurrentHitPoints = 0
		}
		scaled.Alive = n.Alive && scaled.Alive
		return scaled
	}

	target := n.Scaling.TargetLevel(scaled.Level, playerLevel, difficulty)

	tierPool := n.Scaling.Tiers
	if len(tierPool) == 0 {
		tierPool = scaled.Tiers
	}
	selected := scaled.SelectTierForLevel(target, difficulty, tierPool)
	scaled = scaled.ApplyTier(selected)

	// The tier lands near the target; the residual levels progress attack
	// and damage per the profile.
	residual := target - scaled.Level
	scaled.Level = target
	scaled.Recompute()

	if residual != 0 {
		for _, action := range scaled.Actions {
			action.ToHitBonus += residual * n.Scaling.AttackProgression
			action.DamageBonus += residual * n.Scaling.DamageProgression
		}
	}

	if n.Alive {
		scaled.CurrentHitPoints = scaled.HitPoints
	} else {
		scaled.CurrentHitPoints = 0
	}
	scaled.Alive = n.Alive && scaled.Alive
	return scaled
}

// Recompute pushes the NPC's tracked level into the stat block and mirrors
// its alive flag back
func (n *NPC) Recompute() {
	if n.StatBlock == nil {
		return
	}
	level := n.Level
	if level < 1 {
		level = 1
	}
	n.StatBlock.Level = level
	n.StatBlock.Recompute()
	n.Alive = n.StatBlock.Alive
}

// ApplyAutoLevel brings the companion's stat block up to its tracked level,
// through the scaling profile when one is attached
func (n *NPC) ApplyAutoLevel(difficulty string) {
	if n.StatBlock == nil {
		return
	}

	if n.Scaling != nil {
		if scaled := n.ScaledStatBlock(n.Level, difficulty); scaled != nil {
			n.StatBlock = scaled
		}
	} else {
		n.StatBlock.Level = n.Level
		n.StatBlock.Recompute()
	}
	n.Alive = n.StatBlock.Alive
}

// GainXP adds experience and advances the tracked level through every
// threshold the new total crosses. The stat block is not rescaled here; that
// is ApplyAutoLevel's job, or a queued level-up for manual companions.
func (n *NPC) GainXP(amount int) []int {
	if amount > 0 {
		n.XP += amount
	}

	var attained []int
	for {
		threshold, ok := rules.XPThresholdFor(n.Level + 1)
		if !ok || n.XP < threshold {
			break
		}
		n.Level++
		attained = append(attained, n.Level)
	}
	return attained
}

// ApplyDamage forwards damage to the stat block, or kills a blockless NPC
// outright
func (n *NPC) ApplyDamage(amount int) {
	if n.StatBlock != nil {
		n.StatBlock.ApplyDamage(amount)
		if !n.StatBlock.Alive {
			n.Alive = false
		}
		return
	}
	if amount > 0 {
		n.Alive = false
	}
}
