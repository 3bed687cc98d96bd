package modifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	t.Run("sums overlapping keys across sources", func(t *testing.T) {
		aggregated := Aggregate(
			FromMap{"strength": 2, "armor_class": 1},
			FromMap{"strength": 1, "hit_points": 5},
			nil,
			FromMap{"armor_class": -1},
		)

		assert.Equal(t, Map{"strength": 3, "armor_class": 0, "hit_points": 5}, aggregated)
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		aggregated := Aggregate()
		assert.Empty(t, aggregated)
		assert.Equal(t, 0, aggregated.Get("anything"))
	})
}

func TestProgression_EntriesThrough(t *testing.T) {
	progression := Progression{
		1: {Modifiers: map[string]int{"hit_points": 1}, Features: []string{"toughness"}},
		3: {Modifiers: map[string]int{"hit_points": 2}, Features: []string{"resilience"}},
		5: {Modifiers: map[string]int{"hit_points": 3}},
	}

	t.Run("excludes entries above the level", func(t *testing.T) {
		entries := progression.EntriesThrough(3)
		assert.Len(t, entries, 2)
	})

	t.Run("orders entries by unlocking level", func(t *testing.T) {
		entries := progression.EntriesThrough(10)
		assert.Len(t, entries, 3)
		assert.Equal(t, []string{"toughness"}, entries[0].Features)
		assert.Equal(t, []string{"resilience"}, entries[1].Features)
	})
}

func TestAccumulation_Collect(t *testing.T) {
	race := Progression{
		1: {Features: []string{"darkvision"}, ChoiceSlots: map[string]int{"cantrip": 1}},
	}
	class := Progression{
		1: {Modifiers: map[string]int{"hit_points": 2}},
		2: {SpellSlots: map[string]int{"1": 2}, Features: []string{"spellcasting"}},
		9: {SpellSlots: map[string]int{"5": 1}},
	}

	acc := NewAccumulation()
	acc.Collect(race, 3)
	acc.Collect(class, 3)

	assert.Equal(t, []string{"darkvision", "spellcasting"}, acc.Features)
	assert.Equal(t, 2, acc.Modifiers.Get("hit_points"))
	assert.Equal(t, map[string]int{"1": 2}, acc.SpellSlots)
	assert.Equal(t, map[string]int{"cantrip": 1}, acc.ChoiceSlots)
}
