package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/chronicler-rpg/engine/internal/dice/mock"
	"github.com/chronicler-rpg/engine/internal/errors"
)

func TestRollCheck(t *testing.T) {
	t.Run("skill check succeeds on total at or above dc", func(t *testing.T) {
		pc := testCharacter(t, 1)
		roller := mockdice.NewManualMockRoller()
		roller.SetNextRoll(10)

		// athletics: strength 3 + proficiency 2
		result, err := RollCheck(pc, "athletics", 15, roller, CheckOptions{})
		require.NoError(t, err)
		assert.Equal(t, 10, result.Roll)
		assert.Equal(t, 5, result.Modifier)
		assert.Equal(t, 15, result.Total)
		assert.True(t, result.Success)
		assert.False(t, result.Critical)
		assert.Contains(t, result.Breakdown, "athletics")
		assert.Contains(t, result.Breakdown, "success")
	})

	t.Run("failure below dc", func(t *testing.T) {
		pc := testCharacter(t, 1)
		roller := mockdice.NewManualMockRoller()
		roller.SetNextRoll(2)

		result, err := RollCheck(pc, "athletics", 15, roller, CheckOptions{})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.Breakdown, "failure")
	})

	t.Run("advantage keeps the higher die", func(t *testing.T) {
		pc := testCharacter(t, 1)
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{4, 17})

		result, err := RollCheck(pc, "athletics", 20, roller, CheckOptions{Advantage: true})
		require.NoError(t, err)
		assert.Equal(t, 17, result.Roll)
		assert.True(t, result.Success)
	})

	t.Run("disadvantage keeps the lower die", func(t *testing.T) {
		pc := testCharacter(t, 1)
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{4, 17})

		result, err := RollCheck(pc, "athletics", 10, roller, CheckOptions{Disadvantage: true})
		require.NoError(t, err)
		assert.Equal(t, 4, result.Roll)
		assert.False(t, result.Success)
	})

	t.Run("advantage and disadvantage cancel", func(t *testing.T) {
		pc := testCharacter(t, 1)
		roller := mockdice.NewManualMockRoller()
		roller.SetNextRoll(12)

		result, err := RollCheck(pc, "athletics", 10, roller, CheckOptions{Advantage: true, Disadvantage: true})
		require.NoError(t, err)
		assert.Equal(t, 12, result.Roll)
	})

	t.Run("natural 20 and 1 are flagged", func(t *testing.T) {
		pc := testCharacter(t, 1)
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{20, 1})

		crit, err := RollCheck(pc, "athletics", 30, roller, CheckOptions{})
		require.NoError(t, err)
		assert.True(t, crit.Critical)

		fumble, err := RollCheck(pc, "athletics", 1, roller, CheckOptions{})
		require.NoError(t, err)
		assert.True(t, fumble.Fumble)
	})

	t.Run("ability-only check uses the raw modifier", func(t *testing.T) {
		pc := testCharacter(t, 1)
		roller := mockdice.NewManualMockRoller()
		roller.SetNextRoll(10)

		result, err := RollCheck(pc, "strength", 13, roller, CheckOptions{AbilityOnly: true})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Modifier)
		assert.True(t, result.Success)
	})

	t.Run("unknown names error", func(t *testing.T) {
		pc := testCharacter(t, 1)
		roller := mockdice.NewManualMockRoller()

		_, err := RollCheck(pc, "lockpicking", 10, roller, CheckOptions{})
		assert.True(t, errors.IsInvalidArgument(err))

		_, err = RollCheck(pc, "luck", 10, roller, CheckOptions{AbilityOnly: true})
		assert.True(t, errors.IsInvalidArgument(err))
	})
}
