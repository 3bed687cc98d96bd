package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbilityModifier(t *testing.T) {
	tests := []struct {
		score    int
		modifier int
	}{
		{score: 1, modifier: -5},
		{score: 7, modifier: -2},
		{score: 8, modifier: -1},
		{score: 9, modifier: -1},
		{score: 10, modifier: 0},
		{score: 11, modifier: 0},
		{score: 12, modifier: 1},
		{score: 15, modifier: 2},
		{score: 18, modifier: 4},
		{score: 20, modifier: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.modifier, AbilityModifier(tt.score), "score %d", tt.score)
	}
}

func TestProficiencyBonus(t *testing.T) {
	tests := []struct {
		level int
		bonus int
	}{
		{level: 1, bonus: 2},
		{level: 4, bonus: 2},
		{level: 5, bonus: 3},
		{level: 8, bonus: 3},
		{level: 9, bonus: 4},
		{level: 17, bonus: 6},
		{level: 0, bonus: 2}, // clamped to level 1
	}

	for _, tt := range tests {
		assert.Equal(t, tt.bonus, ProficiencyBonus(tt.level), "level %d", tt.level)
	}
}

func TestProficiencyTierMultiplier(t *testing.T) {
	assert.Equal(t, 0, ProficiencyUntrained.Multiplier())
	assert.Equal(t, 1, ProficiencyTrained.Multiplier())
	assert.Equal(t, 2, ProficiencyExpert.Multiplier())
	assert.Equal(t, 0, ProficiencyTier("grandmaster").Multiplier())
}

func TestSkillRegistry(t *testing.T) {
	assert.Len(t, SkillIDs, 18)
	for _, skill := range SkillIDs {
		ability, ok := SkillToAbility[skill]
		assert.True(t, ok, "skill %s has no governing ability", skill)
		assert.True(t, IsAbility(ability))
	}
}

func TestSaveAliases(t *testing.T) {
	assert.Equal(t, AbilityConstitution, SaveToAbility[SaveFortitude])
	assert.Equal(t, AbilityDexterity, SaveToAbility[SaveReflex])
	assert.Equal(t, AbilityWisdom, SaveToAbility[SaveWill])
}
