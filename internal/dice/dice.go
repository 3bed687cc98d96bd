package dice

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/chronicler-rpg/engine/internal/errors"
)

// RollResult holds the outcome of a dice roll
type RollResult struct {
	Total    int   // Sum of rolls plus bonus
	RawTotal int   // Sum of rolls without the bonus
	Highest  int   // Highest single die
	Lowest   int   // Lowest single die
	Rolls    []int // Individual die results
	Bonus    int
	Count    int
	Sides    int
	IsCrit   bool // Natural 20 on a single d20
	IsFumble bool // Natural 1 on a single d20
}

var exprPattern = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// Roll rolls count dice with the given sides and adds a bonus. All randomness
// comes from the supplied source so resolutions are replayable under a seed.
func Roll(rng *rand.Rand, count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.InvalidArgument("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.InvalidArgument("invalid dice size")
	}

	rolls := make([]int, count)
	total, highest, lowest := 0, 0, 0
	for i := 0; i < count; i++ {
		roll := rng.Intn(sides) + 1
		rolls[i] = roll
		total += roll
		if i == 0 || roll > highest {
			highest = roll
		}
		if i == 0 || roll < lowest {
			lowest = roll
		}
	}

	result := &RollResult{
		Total:    total + bonus,
		RawTotal: total,
		Highest:  highest,
		Lowest:   lowest,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
	}

	if count == 1 && sides == 20 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}

	return result, nil
}

// RollExpression parses and rolls a simple "NdM", "NdM+K" or "NdM-K" dice
// expression
func RollExpression(rng *rand.Rand, expression string) (*RollResult, error) {
	count, sides, bonus, err := ParseExpression(expression)
	if err != nil {
		return nil, err
	}
	return Roll(rng, count, sides, bonus)
}

// ParseExpression splits a dice expression into its count, sides and bonus
// parts without rolling it
func ParseExpression(expression string) (count, sides, bonus int, err error) {
	match := exprPattern.FindStringSubmatch(strings.TrimSpace(expression))
	if match == nil {
		return 0, 0, 0, errors.InvalidArgumentf("invalid dice expression %q", expression)
	}

	count, _ = strconv.Atoi(match[1])
	sides, _ = strconv.Atoi(match[2])
	if match[3] != "" {
		bonus, _ = strconv.Atoi(match[3])
	}
	return count, sides, bonus, nil
}

// String renders the roll in a compact human-readable form
func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "+")
	if r.Bonus != 0 {
		return fmt.Sprintf("%d (%s%+d)", r.Total, compact, r.Bonus)
	}
	return fmt.Sprintf("%d (%s)", r.Total, compact)
}
