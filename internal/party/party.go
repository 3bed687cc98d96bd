// Package party tracks the adventuring party: the roster of companions
// around the player character, shared party experience, and the queue of
// level-ups waiting on player input.
package party

import (
	"github.com/chronicler-rpg/engine/internal/character"
	"github.com/chronicler-rpg/engine/internal/npc"
	"github.com/chronicler-rpg/engine/internal/rules"
)

// Roster is the party membership bookkeeping: who leads, who travels, who
// waits in reserve. A companion id appears in at most one list.
type Roster struct {
	LeaderID          string         `json:"leader_id"`
	ActiveCompanions  []string       `json:"active_companions"`
	ReserveCompanions []string       `json:"reserve_companions"`
	SharedResources   map[string]int `json:"shared_resources,omitempty"`
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{SharedResources: make(map[string]int)}
}

// EnsureMember adds or moves a companion into the desired slot, removing
// duplicates from both lists first
func (r *Roster) EnsureMember(companionID string, active bool) {
	if companionID == "" {
		return
	}
	r.ActiveCompanions = removeString(r.ActiveCompanions, companionID)
	r.ReserveCompanions = removeString(r.ReserveCompanions, companionID)
	if active {
		r.ActiveCompanions = append(r.ActiveCompanions, companionID)
	} else {
		r.ReserveCompanions = append(r.ReserveCompanions, companionID)
	}
}

// SyncWithPC guarantees the roster includes the player character, as leader
// when no leader is set and at the front of the active list
func (r *Roster) SyncWithPC(pc *character.PlayerCharacter) {
	if r.LeaderID == "" {
		r.LeaderID = pc.ID
	}
	if containsString(r.ActiveCompanions, pc.ID) {
		return
	}
	r.ReserveCompanions = removeString(r.ReserveCompanions, pc.ID)
	r.ActiveCompanions = append([]string{pc.ID}, r.ActiveCompanions...)
}

// Party couples the player character with their companions and the pending
// level-up queue
type Party struct {
	PC           *character.PlayerCharacter `json:"pc"`
	Companions   []*npc.NPC                 `json:"companions,omitempty"`
	Roster       *Roster                    `json:"roster"`
	LevelUpQueue []rules.LevelUpRequest     `json:"level_up_queue,omitempty"`
}

// New creates a party led by the given player character
func New(pc *character.PlayerCharacter) *Party {
	roster := NewRoster()
	roster.SyncWithPC(pc)
	return &Party{PC: pc, Roster: roster}
}

// AddCompanion attaches a companion NPC and registers it on the roster
func (p *Party) AddCompanion(companion *npc.NPC, active bool) {
	for _, existing := range p.Companions {
		if existing.ID == companion.ID {
			p.Roster.EnsureMember(companion.ID, active)
			return
		}
	}
	p.Companions = append(p.Companions, companion)
	p.Roster.EnsureMember(companion.ID, active)
}

// Companion returns the companion with the given id, or nil
func (p *Party) Companion(id string) *npc.NPC {
	for _, companion := range p.Companions {
		if companion.ID == id {
			return companion
		}
	}
	return nil
}

// GrantPartyXP awards the same experience to the player character and every
// companion. Auto-leveling companions rescale their stat blocks immediately;
// manual companions enqueue a level-up request for the UI instead.
func (p *Party) GrantPartyXP(amount int, difficulty string) {
	p.PC.GainXP(amount)

	for _, companion := range p.Companions {
		attained := companion.GainXP(amount)
		if len(attained) == 0 {
			continue
		}
		if companion.AutoLevel {
			companion.ApplyAutoLevel(difficulty)
			continue
		}
		p.LevelUpQueue = append(p.LevelUpQueue, rules.LevelUpRequest{
			CharacterID:   companion.ID,
			CharacterType: "npc",
			TargetLevel:   companion.Level,
		})
	}
}

// ResolveLevelUp pops the queued request for a character after the player
// has made their choices, applying the companion's stat block rescale
func (p *Party) ResolveLevelUp(characterID, difficulty string) bool {
	for i, request := range p.LevelUpQueue {
		if request.CharacterID != characterID {
			continue
		}
		if companion := p.Companion(characterID); companion != nil {
			companion.ApplyAutoLevel(difficulty)
		}
		p.LevelUpQueue = append(p.LevelUpQueue[:i], p.LevelUpQueue[i+1:]...)
		return true
	}
	return false
}

// CompanionLevelSettings is one companion's row on the level-up screen
type CompanionLevelSettings struct {
	ID        string `json:"id"`
	Level     int    `json:"level"`
	XP        int    `json:"xp"`
	AutoLevel bool   `json:"auto_level"`
}

// LevelUpScreenConfig is the snapshot the level-up screen renders from
type LevelUpScreenConfig struct {
	PCLevel    int                      `json:"pc_level"`
	PCXP       int                      `json:"pc_xp"`
	Companions []CompanionLevelSettings `json:"companions"`
	Pending    []rules.LevelUpRequest   `json:"pending"`
}

// LevelUpScreen builds the level-up screen snapshot from the party's state
func (p *Party) LevelUpScreen() *LevelUpScreenConfig {
	config := &LevelUpScreenConfig{
		PCLevel: p.PC.Level,
		PCXP:    p.PC.XP,
		Pending: append([]rules.LevelUpRequest(nil), p.LevelUpQueue...),
	}
	for _, companion := range p.Companions {
		config.Companions = append(config.Companions, CompanionLevelSettings{
			ID:        companion.ID,
			Level:     companion.Level,
			XP:        companion.XP,
			AutoLevel: companion.AutoLevel,
		})
	}
	return config
}

func removeString(values []string, target string) []string {
	kept := values[:0]
	for _, value := range values {
		if value != target {
			kept = append(kept, value)
		}
	}
	return kept
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
