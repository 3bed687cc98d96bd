package dice

import (
	"math/rand"
	"time"
)

// randomRoller implements Roller over a caller-supplied random source
type randomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller creates a roller backed by the given random source. A nil
// source falls back to a time-seeded one; tests should always pass a seeded
// source for replayable rolls.
func NewRandomRoller(rng *rand.Rand) Roller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &randomRoller{rng: rng}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	return Roll(r.rng, count, sides, bonus)
}

// RollExpression implements Roller.RollExpression
func (r *randomRoller) RollExpression(expression string) (*RollResult, error) {
	return RollExpression(r.rng, expression)
}

// RollWithAdvantage implements Roller.RollWithAdvantage
func (r *randomRoller) RollWithAdvantage(sides, bonus int) (*RollResult, error) {
	return r.rollTwice(sides, bonus, true)
}

// RollWithDisadvantage implements Roller.RollWithDisadvantage
func (r *randomRoller) RollWithDisadvantage(sides, bonus int) (*RollResult, error) {
	return r.rollTwice(sides, bonus, false)
}

func (r *randomRoller) rollTwice(sides, bonus int, takeHigher bool) (*RollResult, error) {
	first, err := Roll(r.rng, 1, sides, 0)
	if err != nil {
		return nil, err
	}
	second, err := Roll(r.rng, 1, sides, 0)
	if err != nil {
		return nil, err
	}

	roll1 := first.Rolls[0]
	roll2 := second.Rolls[0]
	kept := roll1
	if (takeHigher && roll2 > roll1) || (!takeHigher && roll2 < roll1) {
		kept = roll2
	}

	result := &RollResult{
		Total:    kept + bonus,
		RawTotal: kept,
		Highest:  max(roll1, roll2),
		Lowest:   min(roll1, roll2),
		Rolls:    []int{roll1, roll2}, // Show both rolls
		Bonus:    bonus,
		Count:    1,
		Sides:    sides,
	}

	if sides == 20 {
		result.IsCrit = kept == 20
		result.IsFumble = kept == 1
	}

	return result, nil
}
