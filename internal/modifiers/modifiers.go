// Package modifiers implements the aggregation pipeline that folds bonus
// maps from every source a character has (race, class, feats, equipment,
// status effects, progression) into one effective-modifier set.
package modifiers

// Canonical non-ability modifier keys. Ability names, save names, and skill
// names are also valid keys.
const (
	KeyHitPoints  = "hit_points"
	KeyArmorClass = "armor_class"
	KeyInitiative = "initiative"
)

// Source is anything that contributes a bonus map. The set of sources is
// closed: races, classes, feats, equipped items, status effect stores, tier
// adjustments, and progression entries.
type Source interface {
	Contributes() map[string]int
}

// Map is an aggregated modifier set keyed by stat name
type Map map[string]int

// Merge adds every entry of src into the map
func (m Map) Merge(src map[string]int) {
	for key, value := range src {
		m[key] += value
	}
}

// Get returns the aggregated value for key, zero when absent
func (m Map) Get(key string) int {
	return m[key]
}

// Clone returns a copy of the map
func (m Map) Clone() Map {
	clone := make(Map, len(m))
	for key, value := range m {
		clone[key] = value
	}
	return clone
}

// FromMap adapts a plain bonus map into a Source
type FromMap map[string]int

// Contributes implements Source
func (f FromMap) Contributes() map[string]int {
	return f
}

// Aggregate folds the sources into a single modifier map in one fixed pass.
// Callers control precedence through argument order; no entry may depend on
// another entry in the same pass.
func Aggregate(sources ...Source) Map {
	aggregated := make(Map)
	for _, source := range sources {
		if source == nil {
			continue
		}
		aggregated.Merge(source.Contributes())
	}
	return aggregated
}
