// Package combat implements the turn-based encounter engine: initiative,
// turn traversal, the action point economy, attack and item resolution, and
// encounter end conditions.
package combat

import "github.com/chronicler-rpg/engine/internal/creature"

// CombatantKind discriminates combatant references
type CombatantKind string

const (
	KindPC       CombatantKind = "pc"
	KindCreature CombatantKind = "creature"
	KindNPC      CombatantKind = "npc"
)

// CombatantRef is the opaque (kind, id) pair identifying a combatant inside
// an encounter. The caller guarantees ids are unique per encounter.
type CombatantRef struct {
	Kind CombatantKind `json:"kind"`
	ID   string        `json:"id"`
}

// Key returns the registry key for the reference
func (r CombatantRef) Key() string {
	return string(r.Kind) + ":" + r.ID
}

// TurnOrderEntry is one slot in the initiative order
type TurnOrderEntry struct {
	Ref         CombatantRef `json:"ref"`
	Initiative  int          `json:"initiative"`
	IsConscious bool         `json:"is_conscious"`
}

// EncounterState is the persistable state of a running encounter. Turn order
// and metadata are exclusively owned by the encounter for its lifetime.
type EncounterState struct {
	ID           string           `json:"id"`
	Participants []CombatantRef   `json:"participants"`
	TurnOrder    []TurnOrderEntry `json:"turn_order"`
	ActiveIndex  int              `json:"active_index"`
	Round        int              `json:"round"`
	Difficulty   string           `json:"difficulty"`
	Meta         map[string]any   `json:"meta,omitempty"`
}

// ActiveEntry returns the turn order entry whose turn it is
func (s *EncounterState) ActiveEntry() *TurnOrderEntry {
	if len(s.TurnOrder) == 0 {
		return nil
	}
	return &s.TurnOrder[s.ActiveIndex]
}

// TurnContext tracks the acting combatant's action point budget for the turn
type TurnContext struct {
	Actor       CombatantRef `json:"actor"`
	RemainingAP int          `json:"remaining_ap"`
}

// DefaultActionPoints is the per-turn action point budget
const DefaultActionPoints = 3

// CombatLogEntry is one line of the encounter log
type CombatLogEntry struct {
	Round   int           `json:"round"`
	Actor   CombatantRef  `json:"actor"`
	Action  string        `json:"action"`
	Target  *CombatantRef `json:"target,omitempty"`
	Message string        `json:"message"`
}

// Status is the outcome of a processed turn
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusVictory Status = "victory"
	StatusDefeat  Status = "defeat"
	StatusFled    Status = "fled"
)

// EncounterResult bundles the state, log, and outcome of one processed turn
type EncounterResult struct {
	State   *EncounterState  `json:"state"`
	Context *TurnContext     `json:"context"`
	Log     []CombatLogEntry `json:"log"`
	Status  Status           `json:"status"`
	Rewards map[string]any   `json:"rewards,omitempty"`
}

// AttackResult is the outcome of a single attack resolution
type AttackResult struct {
	Hit        bool `json:"hit"`
	Crit       bool `json:"crit"`
	Damage     int  `json:"damage"`
	TargetDied bool `json:"target_died"`
}

// CommandType enumerates the turn commands
type CommandType string

const (
	CommandAttack CommandType = "attack"
	CommandItem   CommandType = "item"
	CommandDefend CommandType = "defend"
	CommandFlee   CommandType = "flee"
)

// Command is one requested action for the active combatant's turn. A zero
// APCost counts as one action point.
type Command struct {
	Type   CommandType
	Target *CombatantRef
	Action *creature.Action
	ItemID string
	APCost int
}

func (c *Command) cost() int {
	if c.APCost <= 0 {
		return 1
	}
	return c.APCost
}
