package character

import (
	"fmt"

	"github.com/chronicler-rpg/engine/internal/dice"
	"github.com/chronicler-rpg/engine/internal/errors"
	"github.com/chronicler-rpg/engine/internal/rules"
)

// CheckResult is the structured breakdown of a skill or ability check. It is
// the bridge consumed by dialogue and quest systems.
type CheckResult struct {
	Roll      int    `json:"roll"`
	Modifier  int    `json:"modifier"`
	Total     int    `json:"total"`
	DC        int    `json:"dc"`
	Success   bool   `json:"success"`
	Critical  bool   `json:"critical"`
	Fumble    bool   `json:"fumble"`
	Breakdown string `json:"breakdown"`
}

// CheckOptions tunes how a check is rolled. Advantage and disadvantage
// together cancel out to a plain roll.
type CheckOptions struct {
	Advantage    bool
	Disadvantage bool

	// AbilityOnly rolls a raw ability check instead of a skill check.
	// Ability overrides the check name as the ability to use.
	AbilityOnly bool
	Ability     string
}

// RollCheck resolves a skill or ability check against a difficulty class.
// The name must be a registered skill, or an ability when AbilityOnly is set.
func RollCheck(pc *PlayerCharacter, name string, dc int, roller dice.Roller, opts CheckOptions) (*CheckResult, error) {
	modifier, err := checkModifier(pc, name, opts)
	if err != nil {
		return nil, err
	}

	result, err := rollCheckDie(roller, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll check")
	}

	roll := result.RawTotal
	total := roll + modifier
	success := total >= dc

	outcome := "failure"
	if success {
		outcome = "success"
	}

	return &CheckResult{
		Roll:      roll,
		Modifier:  modifier,
		Total:     total,
		DC:        dc,
		Success:   success,
		Critical:  result.IsCrit,
		Fumble:    result.IsFumble,
		Breakdown: fmt.Sprintf("%s: d20=%d%+d = %d vs DC %d (%s)", name, roll, modifier, total, dc, outcome),
	}, nil
}

func checkModifier(pc *PlayerCharacter, name string, opts CheckOptions) (int, error) {
	if opts.AbilityOnly {
		ability := opts.Ability
		if ability == "" {
			ability = name
		}
		if !rules.IsAbility(ability) {
			return 0, errors.InvalidArgumentf("unknown ability %q", ability)
		}
		return pc.AbilityModifier(ability), nil
	}
	return pc.SkillModifier(name)
}

func rollCheckDie(roller dice.Roller, opts CheckOptions) (*dice.RollResult, error) {
	switch {
	case opts.Advantage && !opts.Disadvantage:
		return roller.RollWithAdvantage(20, 0)
	case opts.Disadvantage && !opts.Advantage:
		return roller.RollWithDisadvantage(20, 0)
	default:
		return roller.Roll(1, 20, 0)
	}
}
