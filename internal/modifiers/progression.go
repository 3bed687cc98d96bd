package modifiers

import "sort"

// ProgressionEntry is a level-gated bundle of modifiers, granted feature
// names, spell slot pools, and choice-slot counters
type ProgressionEntry struct {
	Modifiers   map[string]int `json:"modifiers,omitempty"`
	Features    []string       `json:"features,omitempty"`
	SpellSlots  map[string]int `json:"spell_slots,omitempty"`
	ChoiceSlots map[string]int `json:"choice_slots,omitempty"`
}

// Progression maps an unlocking level to its entry
type Progression map[int]ProgressionEntry

// EntriesThrough returns every entry whose unlocking level is at or below
// the given level, in ascending level order so accumulation is deterministic
func (p Progression) EntriesThrough(level int) []ProgressionEntry {
	levels := make([]int, 0, len(p))
	for unlockLevel := range p {
		if unlockLevel <= level {
			levels = append(levels, unlockLevel)
		}
	}
	sort.Ints(levels)

	entries := make([]ProgressionEntry, 0, len(levels))
	for _, unlockLevel := range levels {
		entries = append(entries, p[unlockLevel])
	}
	return entries
}

// Accumulation carries everything a progression pass produces beside the
// numeric modifiers
type Accumulation struct {
	Modifiers   Map
	Features    []string
	SpellSlots  map[string]int
	ChoiceSlots map[string]int
}

// NewAccumulation creates an empty accumulation
func NewAccumulation() *Accumulation {
	return &Accumulation{
		Modifiers:   make(Map),
		SpellSlots:  make(map[string]int),
		ChoiceSlots: make(map[string]int),
	}
}

// Collect folds every unlocked entry of the progression into the
// accumulation
func (a *Accumulation) Collect(progression Progression, level int) {
	for _, entry := range progression.EntriesThrough(level) {
		a.Modifiers.Merge(entry.Modifiers)
		a.Features = append(a.Features, entry.Features...)
		for key, value := range entry.SpellSlots {
			a.SpellSlots[key] += value
		}
		for key, value := range entry.ChoiceSlots {
			a.ChoiceSlots[key] += value
		}
	}
}
