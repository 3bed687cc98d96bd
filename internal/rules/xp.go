package rules

// XPThresholds maps a level to the total experience required to reach it.
// Levels beyond the authored table never trigger a level-up.
var XPThresholds = map[int]int{
	1: 0,
	2: 300,
	3: 900,
	4: 2700,
	5: 6500,
}

// XPThresholdFor returns the total experience required for the given level
// and whether the level exists in the table
func XPThresholdFor(level int) (int, bool) {
	threshold, ok := XPThresholds[level]
	return threshold, ok
}

// LevelUpRequest represents a pending level-up that requires player input
// rather than an automatic rescale
type LevelUpRequest struct {
	CharacterID   string `json:"character_id"`
	CharacterType string `json:"character_type"`
	TargetLevel   int    `json:"target_level"`
}
