package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicler-rpg/engine/internal/character"
	"github.com/chronicler-rpg/engine/internal/combat"
	"github.com/chronicler-rpg/engine/internal/creature"
)

func scriptPC(t *testing.T) *character.PlayerCharacter {
	t.Helper()
	pc, err := character.New(&character.Config{
		ID:    "pc.adventurer",
		Name:  "Adventurer",
		Race:  &character.Race{ID: "race.human", Name: "Human"},
		Class: &character.Class{ID: "class.fighter", Name: "Fighter", HitDie: 10},
	})
	require.NoError(t, err)
	return pc
}

func scriptCreature(t *testing.T, id string) *creature.Creature {
	t.Helper()
	made, err := creature.New(&creature.Config{
		ID:         id,
		Name:       "Raider",
		Level:      1,
		HitDie:     8,
		ArmorClass: 12,
		Actions: []*creature.Action{
			{Name: "Axe Swing", AttackAbility: "strength", DamageDice: "1d8"},
		},
	})
	require.NoError(t, err)
	return made
}

func TestCommandsFor(t *testing.T) {
	pc := scriptPC(t)
	pcAction := &creature.Action{Name: "Longsword", AttackAbility: "strength", DamageDice: "1d8"}
	hostiles := []*creature.Creature{scriptCreature(t, "creature.raider.1")}
	allies := []*creature.Creature{scriptCreature(t, "creature.hound")}

	t.Run("pc attacks the first standing hostile", func(t *testing.T) {
		active := &combat.TurnOrderEntry{Ref: combat.CombatantRef{Kind: combat.KindPC, ID: pc.ID}, IsConscious: true}

		commands := commandsFor(active, pc, pcAction, hostiles, allies)
		require.Len(t, commands, 1)
		assert.Equal(t, combat.CommandAttack, commands[0].Type)
		assert.Equal(t, "creature.raider.1", commands[0].Target.ID)
	})

	t.Run("hostile attacks the pc while conscious", func(t *testing.T) {
		active := &combat.TurnOrderEntry{Ref: combat.CombatantRef{Kind: combat.KindCreature, ID: "creature.raider.1"}, IsConscious: true}

		commands := commandsFor(active, pc, pcAction, hostiles, allies)
		require.Len(t, commands, 1)
		assert.Equal(t, combat.KindPC, commands[0].Target.Kind)
	})

	t.Run("hostile retargets an ally when the pc is down", func(t *testing.T) {
		downed := scriptPC(t)
		downed.ApplyDamage(downed.HitPoints)
		active := &combat.TurnOrderEntry{Ref: combat.CombatantRef{Kind: combat.KindCreature, ID: "creature.raider.1"}, IsConscious: true}

		commands := commandsFor(active, downed, pcAction, hostiles, allies)
		require.Len(t, commands, 1)
		assert.Equal(t, combat.KindNPC, commands[0].Target.Kind)
		assert.Equal(t, "creature.hound", commands[0].Target.ID)
	})

	t.Run("unconscious actors issue nothing", func(t *testing.T) {
		active := &combat.TurnOrderEntry{Ref: combat.CombatantRef{Kind: combat.KindPC, ID: pc.ID}, IsConscious: false}
		assert.Empty(t, commandsFor(active, pc, pcAction, hostiles, allies))
	})
}

func TestFirstStanding(t *testing.T) {
	first := scriptCreature(t, "creature.a")
	second := scriptCreature(t, "creature.b")
	first.ApplyDamage(first.HitPoints)

	standing := firstStanding([]*creature.Creature{first, second})
	require.NotNil(t, standing)
	assert.Equal(t, "creature.b", standing.ID)

	second.ApplyDamage(second.HitPoints)
	assert.Nil(t, firstStanding([]*creature.Creature{first, second}))
}
