package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicler-rpg/engine/internal/character"
	"github.com/chronicler-rpg/engine/internal/creature"
	"github.com/chronicler-rpg/engine/internal/npc"
	"github.com/chronicler-rpg/engine/internal/rules"
)

func testPC(t *testing.T) *character.PlayerCharacter {
	t.Helper()
	pc, err := character.New(&character.Config{
		ID:    "pc.hero",
		Name:  "Hero",
		Race:  &character.Race{ID: "race.human", Name: "Human"},
		Class: &character.Class{ID: "class.warrior", Name: "Warrior", HitDie: 10},
	})
	require.NoError(t, err)
	return pc
}

func testCompanion(t *testing.T, autoLevel bool) *npc.NPC {
	t.Helper()
	statBlock, err := creature.New(&creature.Config{
		ID:         "creature.companion",
		Name:       "Companion",
		Level:      1,
		HitDie:     8,
		ArmorClass: 12,
		Abilities:  map[string]int{"constitution": 12},
		Actions: []*creature.Action{
			{Name: "Slash", AttackAbility: "strength", ToHitBonus: 2, DamageDice: "1d6"},
		},
	})
	require.NoError(t, err)

	companion := npc.New("npc.companion", statBlock, &npc.ScalingProfile{
		BaseLevel:         1,
		MinLevel:          1,
		MaxLevel:          20,
		AttackProgression: 1,
		DamageProgression: 1,
	})
	companion.AutoLevel = autoLevel
	return companion
}

func TestRoster(t *testing.T) {
	t.Run("ensure member deduplicates across lists", func(t *testing.T) {
		roster := NewRoster()
		roster.EnsureMember("npc.a", true)
		roster.EnsureMember("npc.a", true)
		assert.Equal(t, []string{"npc.a"}, roster.ActiveCompanions)

		roster.EnsureMember("npc.a", false)
		assert.Empty(t, roster.ActiveCompanions)
		assert.Equal(t, []string{"npc.a"}, roster.ReserveCompanions)
	})

	t.Run("sync puts the pc up front as leader", func(t *testing.T) {
		pc := testPC(t)
		roster := NewRoster()
		roster.EnsureMember("npc.a", true)
		roster.SyncWithPC(pc)

		assert.Equal(t, pc.ID, roster.LeaderID)
		assert.Equal(t, []string{pc.ID, "npc.a"}, roster.ActiveCompanions)

		// a second sync is a no-op
		roster.SyncWithPC(pc)
		assert.Equal(t, []string{pc.ID, "npc.a"}, roster.ActiveCompanions)
	})
}

func TestGrantPartyXP(t *testing.T) {
	threshold := rules.XPThresholds[2]

	t.Run("auto-level companions rescale immediately", func(t *testing.T) {
		party := New(testPC(t))
		companion := testCompanion(t, true)
		party.AddCompanion(companion, true)
		baseHP := companion.StatBlock.HitPoints

		party.GrantPartyXP(threshold, creature.DifficultyStandard)

		assert.Equal(t, 2, party.PC.Level)
		assert.Equal(t, 2, companion.Level)
		assert.Equal(t, 2, companion.StatBlock.Level)
		assert.Greater(t, companion.StatBlock.HitPoints, baseHP)
		assert.Empty(t, party.LevelUpQueue)
	})

	t.Run("manual companions queue a request instead", func(t *testing.T) {
		party := New(testPC(t))
		companion := testCompanion(t, false)
		party.AddCompanion(companion, true)

		party.GrantPartyXP(threshold, creature.DifficultyStandard)

		require.Len(t, party.LevelUpQueue, 1)
		request := party.LevelUpQueue[0]
		assert.Equal(t, companion.ID, request.CharacterID)
		assert.Equal(t, "npc", request.CharacterType)
		assert.Equal(t, companion.Level, request.TargetLevel)
		assert.Equal(t, 1, companion.StatBlock.Level, "stat block waits for the player")
	})

	t.Run("below-threshold xp queues nothing", func(t *testing.T) {
		party := New(testPC(t))
		party.AddCompanion(testCompanion(t, false), true)

		party.GrantPartyXP(50, creature.DifficultyStandard)
		assert.Empty(t, party.LevelUpQueue)
	})
}

func TestResolveLevelUp(t *testing.T) {
	party := New(testPC(t))
	companion := testCompanion(t, false)
	party.AddCompanion(companion, true)
	party.GrantPartyXP(rules.XPThresholds[2], creature.DifficultyStandard)
	require.Len(t, party.LevelUpQueue, 1)

	assert.True(t, party.ResolveLevelUp(companion.ID, creature.DifficultyStandard))
	assert.Empty(t, party.LevelUpQueue)
	assert.Equal(t, 2, companion.StatBlock.Level)

	assert.False(t, party.ResolveLevelUp(companion.ID, creature.DifficultyStandard))
}

func TestLevelUpScreen(t *testing.T) {
	party := New(testPC(t))
	companion := testCompanion(t, false)
	party.AddCompanion(companion, true)
	party.GrantPartyXP(rules.XPThresholds[2], creature.DifficultyStandard)

	config := party.LevelUpScreen()

	assert.Equal(t, 2, config.PCLevel)
	assert.Equal(t, rules.XPThresholds[2], config.PCXP)
	require.Len(t, config.Companions, 1)
	assert.Equal(t, companion.ID, config.Companions[0].ID)
	assert.False(t, config.Companions[0].AutoLevel)
	require.Len(t, config.Pending, 1)
	assert.Equal(t, companion.ID, config.Pending[0].CharacterID)
}
