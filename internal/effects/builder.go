package effects

// Builder helps create status effects
type Builder struct {
	effect *StatusEffect
}

// NewBuilder creates a new effect builder with single-stack, turn-based,
// dispellable defaults
func NewBuilder(id, name string) *Builder {
	return &Builder{
		effect: &StatusEffect{
			ID:              id,
			Name:            name,
			Duration:        1,
			DurationType:    DurationTurns,
			Modifiers:       map[string]int{},
			StackingRule:    StackingStack,
			MaxStacks:       1,
			CurrentStacks:   1,
			DispelCondition: DispelAny,
		},
	}
}

// WithSource records what applied the effect
func (b *Builder) WithSource(source string) *Builder {
	b.effect.Source = source
	return b
}

// WithDuration sets the duration and its ticking clock
func (b *Builder) WithDuration(durationType DurationType, amount int) *Builder {
	b.effect.DurationType = durationType
	b.effect.Duration = amount
	return b
}

// Indefinite marks the effect as never expiring on its own
func (b *Builder) Indefinite() *Builder {
	b.effect.Duration = DurationIndefinite
	return b
}

// WithStacking sets the stacking rule and stack cap
func (b *Builder) WithStacking(rule StackingRule, maxStacks int) *Builder {
	b.effect.StackingRule = rule
	b.effect.MaxStacks = maxStacks
	return b
}

// WithDispel sets the dispel condition
func (b *Builder) WithDispel(condition DispelCondition) *Builder {
	b.effect.DispelCondition = condition
	return b
}

// AddModifier adds a keyed numeric modifier
func (b *Builder) AddModifier(key string, value int) *Builder {
	b.effect.Modifiers[key] = value
	return b
}

// Build returns the assembled effect
func (b *Builder) Build() *StatusEffect {
	return b.effect
}
