package effects

// Store holds the status effects attached to a single owner. The owner is
// responsible for recomputing derived stats after any mutating call; every
// mutating method reports whether the collection changed.
type Store struct {
	effects []*StatusEffect
}

// NewStore creates an empty effect store
func NewStore() *Store {
	return &Store{}
}

// Add inserts an effect, combining with an existing effect of the same id
// per the incoming effect's stacking rule
func (s *Store) Add(effect *StatusEffect) {
	for _, existing := range s.effects {
		if existing.ID == effect.ID {
			existing.Combine(effect)
			return
		}
	}
	s.effects = append(s.effects, effect)
}

// Tick advances the matching duration clock by one step and drops effects
// that are no longer active. Returns whether anything was removed or changed.
func (s *Store) Tick(tickType DurationType) bool {
	changed := false
	kept := s.effects[:0]
	for _, effect := range s.effects {
		before := effect.Duration
		if effect.Tick(tickType) {
			kept = append(kept, effect)
			if effect.Duration != before {
				changed = true
			}
		} else {
			changed = true
		}
	}
	s.effects = kept
	return changed
}

// Dispel removes every effect the trigger can dispel. Returns whether any
// effect was removed.
func (s *Store) Dispel(trigger DispelCondition) bool {
	changed := false
	kept := s.effects[:0]
	for _, effect := range s.effects {
		if effect.CanBeDispelled(trigger) {
			changed = true
			continue
		}
		kept = append(kept, effect)
	}
	s.effects = kept
	return changed
}

// Active returns the currently active effects. The returned slice is shared;
// callers must not mutate it.
func (s *Store) Active() []*StatusEffect {
	return s.effects
}

// Get returns the stored effect with the given id, or nil
func (s *Store) Get(id string) *StatusEffect {
	for _, effect := range s.effects {
		if effect.ID == id {
			return effect
		}
	}
	return nil
}

// Len returns the number of stored effects
func (s *Store) Len() int {
	return len(s.effects)
}

// Clone returns a deep copy of the store
func (s *Store) Clone() *Store {
	clone := &Store{effects: make([]*StatusEffect, 0, len(s.effects))}
	for _, effect := range s.effects {
		clone.effects = append(clone.effects, effect.Clone())
	}
	return clone
}

// Contributes implements the modifier source contract: the sum of every
// active effect's stack-scaled modifiers.
func (s *Store) Contributes() map[string]int {
	total := make(map[string]int)
	for _, effect := range s.effects {
		for key, value := range effect.TotalModifiers() {
			total[key] += value
		}
	}
	return total
}
