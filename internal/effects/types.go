package effects

// DurationType says which clock ticks an effect down
type DurationType string

const (
	DurationTurns     DurationType = "turns"
	DurationEncounter DurationType = "encounter"
	DurationRest      DurationType = "rest"
)

// StackingRule defines how an incoming effect combines with an existing
// effect of the same id
type StackingRule string

const (
	StackingStack   StackingRule = "stack"   // Add stacks, keep the longer duration
	StackingRefresh StackingRule = "refresh" // Reset duration, cap stacks
	StackingReplace StackingRule = "replace" // New effect overwrites the old
)

// DispelCondition controls what kind of trigger can remove an effect early
type DispelCondition string

const (
	DispelAny       DispelCondition = "any"
	DispelMagicOnly DispelCondition = "magic_only"
	DispelNone      DispelCondition = "none"
)

// DurationIndefinite marks an effect that never expires on its own
const DurationIndefinite = -1

// StatusEffect is a temporary modifier bundle applied to a character or
// creature. Effective modifiers scale with the current stack count.
type StatusEffect struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Duration        int             `json:"duration"`
	DurationType    DurationType    `json:"duration_type"`
	Modifiers       map[string]int  `json:"modifiers"`
	Source          string          `json:"source"`
	StackingRule    StackingRule    `json:"stacking_rule"`
	MaxStacks       int             `json:"max_stacks"`
	CurrentStacks   int             `json:"current_stacks"`
	DispelCondition DispelCondition `json:"dispel_condition"`
}

// IsActive reports whether the effect still applies. A duration of
// DurationIndefinite never runs out.
func (e *StatusEffect) IsActive() bool {
	return e.Duration > 0 || e.Duration == DurationIndefinite
}

// Tick decrements the duration when the ticking clock matches the effect's
// duration type. Returns whether the effect is still active afterward.
func (e *StatusEffect) Tick(tickType DurationType) bool {
	if e.DurationType == tickType && e.Duration > 0 {
		e.Duration--
	}
	return e.IsActive()
}

// CanBeDispelled reports whether the given trigger removes this effect.
// DispelNone effects are never removable; DispelAny effects always are.
func (e *StatusEffect) CanBeDispelled(trigger DispelCondition) bool {
	switch e.DispelCondition {
	case DispelNone:
		return false
	case DispelAny:
		return true
	default:
		return trigger == e.DispelCondition
	}
}

// Combine merges an incoming effect with the same id into this one,
// following the incoming effect's stacking rule
func (e *StatusEffect) Combine(incoming *StatusEffect) {
	e.StackingRule = incoming.StackingRule
	e.MaxStacks = max(e.MaxStacks, incoming.MaxStacks)

	switch incoming.StackingRule {
	case StackingReplace:
		e.Modifiers = copyModifiers(incoming.Modifiers)
		e.CurrentStacks = incoming.CurrentStacks
		e.Duration = incoming.Duration
	case StackingRefresh:
		e.Duration = incoming.Duration
		e.CurrentStacks = min(incoming.CurrentStacks, e.MaxStacks)
	default: // StackingStack
		e.CurrentStacks = min(e.MaxStacks, e.CurrentStacks+incoming.CurrentStacks)
		e.Duration = max(e.Duration, incoming.Duration)
	}
}

// TotalModifiers returns the effect's modifiers multiplied by its current
// stack count
func (e *StatusEffect) TotalModifiers() map[string]int {
	total := make(map[string]int, len(e.Modifiers))
	for key, value := range e.Modifiers {
		total[key] = value * e.CurrentStacks
	}
	return total
}

// Clone returns a deep copy of the effect
func (e *StatusEffect) Clone() *StatusEffect {
	clone := *e
	clone.Modifiers = copyModifiers(e.Modifiers)
	return &clone
}

func copyModifiers(modifiers map[string]int) map[string]int {
	copied := make(map[string]int, len(modifiers))
	for key, value := range modifiers {
		copied[key] = value
	}
	return copied
}
