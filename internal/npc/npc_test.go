package npc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicler-rpg/engine/internal/creature"
)

func guardStatBlock(t *testing.T) *creature.Creature {
	t.Helper()
	guard, err := creature.New(&creature.Config{
		ID:         "creature.guard",
		Name:       "Guard",
		Level:      2,
		HitDie:     8,
		ArmorClass: 14,
		Abilities: map[string]int{
			"strength":     14,
			"dexterity":    12,
			"constitution": 12,
		},
		Actions: []*creature.Action{
			{Name: "Spear", AttackAbility: "strength", DamageDice: "1d6", DamageBonus: 1},
		},
		Tiers: []*creature.TierTemplate{
			{Name: "veteran", Difficulty: creature.DifficultyHard, LevelAdjustment: 2, AttackAdjustment: 1},
		},
	})
	require.NoError(t, err)
	return guard
}

func TestScalingProfile_TargetLevel(t *testing.T) {
	profile := &ScalingProfile{BaseLevel: 2, MinLevel: 1, MaxLevel: 6}

	tests := []struct {
		name        string
		playerLevel int
		difficulty  string
		want        int
	}{
		{"standard tracks the player", 4, creature.DifficultyStandard, 4},
		{"easy undershoots", 6, creature.DifficultyEasy, 5},
		{"hard overshoots but clamps at max", 6, creature.DifficultyHard, 6},
		{"deadly overshoots more", 4, creature.DifficultyDeadly, 5},
		{"clamps at min", 1, creature.DifficultyDeadly, 1},
		{"unknown difficulty uses multiplier 1", 3, "nightmare", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, profile.TargetLevel(2, tt.playerLevel, tt.difficulty))
		})
	}
}

func TestScaledStatBlock(t *testing.T) {
	t.Run("no stat block yields nil", func(t *testing.T) {
		n := New("npc.merchant", nil, nil)
		assert.Nil(t, n.ScaledStatBlock(3, creature.DifficultyStandard))
	})

	t.Run("no profile returns a fresh copy at authored level", func(t *testing.T) {
		n := New("npc.guard", guardStatBlock(t), nil)
		scaled := n.ScaledStatBlock(10, creature.DifficultyStandard)

		require.NotNil(t, scaled)
		assert.Equal(t, 2, scaled.Level)
		assert.Equal(t, scaled.HitPoints, scaled.CurrentHitPoints)
	})

	t.Run("profile scales to the target level", func(t *testing.T) {
		n := New("npc.guard", guardStatBlock(t), &ScalingProfile{
			BaseLevel:         2,
			MinLevel:          1,
			MaxLevel:          8,
			AttackProgression: 1,
			DamageProgression: 1,
		})

		scaled := n.ScaledStatBlock(6, creature.DifficultyStandard)
		require.NotNil(t, scaled)
		assert.Equal(t, 6, scaled.Level)
		// per level: 8/2+1+1 = 6
		assert.Equal(t, 36, scaled.HitPoints)
		assert.Equal(t, 36, scaled.CurrentHitPoints)

		// standard picks the base tier at level 2; the residual 4 levels
		// progress attack and damage
		assert.Equal(t, 4, scaled.Actions[0].ToHitBonus)
		assert.Equal(t, 1+4, scaled.Actions[0].DamageBonus)
	})

	t.Run("hard difficulty picks the hard tier before progressing", func(t *testing.T) {
		n := New("npc.guard", guardStatBlock(t), &ScalingProfile{
			BaseLevel:         2,
			MinLevel:          1,
			MaxLevel:          8,
			AttackProgression: 1,
		})

		// target = 2 + (6-2)*1.25 = 7; veteran lands at 4, residual 3
		scaled := n.ScaledStatBlock(6, creature.DifficultyHard)
		require.NotNil(t, scaled)
		assert.Equal(t, 7, scaled.Level)
		assert.Equal(t, 1+3, scaled.Actions[0].ToHitBonus)
	})

	t.Run("template is never mutated", func(t *testing.T) {
		statBlock := guardStatBlock(t)
		n := New("npc.guard", statBlock, &ScalingProfile{BaseLevel: 2, MinLevel: 1, MaxLevel: 8})

		_ = n.ScaledStatBlock(6, creature.DifficultyHard)
		assert.Equal(t, 2, statBlock.Level)
		assert.Equal(t, 0, statBlock.Actions[0].ToHitBonus)
	})

	t.Run("dead NPC yields a dead copy", func(t *testing.T) {
		n := New("npc.guard", guardStatBlock(t), nil)
		n.Alive = false

		scaled := n.ScaledStatBlock(2, creature.DifficultyStandard)
		require.NotNil(t, scaled)
		assert.False(t, scaled.Alive)
		assert.Equal(t, 0, scaled.CurrentHitPoints)
	})
}

func TestApplyAutoLevel(t *testing.T) {
	n := New("npc.guard", guardStatBlock(t), nil)
	n.Level = 4
	n.ApplyAutoLevel(creature.DifficultyStandard)

	assert.Equal(t, 4, n.StatBlock.Level)
	// per level: 8/2+1+1 = 6, level 4
	assert.Equal(t, 24, n.StatBlock.HitPoints)
}

func TestGainXP(t *testing.T) {
	t.Run("levels without touching the stat block", func(t *testing.T) {
		n := New("npc.guard", guardStatBlock(t), nil)
		n.Level = 1
		n.XP = 0

		attained := n.GainXP(950)
		assert.Equal(t, []int{2, 3}, attained)
		assert.Equal(t, 3, n.Level)
		assert.Equal(t, 2, n.StatBlock.Level, "rescaling is deferred to ApplyAutoLevel")
	})
}

func TestApplyDamage(t *testing.T) {
	t.Run("forwards to the stat block", func(t *testing.T) {
		n := New("npc.guard", guardStatBlock(t), nil)
		n.ApplyDamage(100)
		assert.False(t, n.Alive)
		assert.False(t, n.StatBlock.Alive)
	})

	t.Run("kills a blockless NPC outright", func(t *testing.T) {
		n := New("npc.merchant", nil, nil)
		n.ApplyDamage(1)
		assert.False(t, n.Alive)
	})
}
