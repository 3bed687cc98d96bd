package combat

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/chronicler-rpg/engine/internal/character"
	"github.com/chronicler-rpg/engine/internal/creature"
	"github.com/chronicler-rpg/engine/internal/dice"
	"github.com/chronicler-rpg/engine/internal/errors"
	"github.com/chronicler-rpg/engine/internal/item"
	"github.com/chronicler-rpg/engine/internal/uuid"
)

// Combatant is what the engine needs from anything taking part in an
// encounter. PlayerCharacter and Creature both satisfy it.
type Combatant interface {
	CombatantID() string
	CombatantName() string
	AbilityModifier(ability string) int
	Proficiency() int
	DexterityModifier() int
	InitiativeModifier() int
	EffectiveArmorClass() int
	ApplyDamage(amount int)
	Heal(amount int)
	IsConscious() bool
}

// RewardsHook is invoked exactly once when an encounter ends in victory
type RewardsHook func(state *EncounterState, pc *character.PlayerCharacter, hostiles []*creature.Creature) map[string]any

// Meta keys tracking the one-shot rewards grant across turns
const (
	metaRewardsPending = "rewards_pending"
	metaRewardsGranted = "rewards_granted"
)

// Engine resolves encounters. All randomness flows through the configured
// roller, so a seeded roller replays an encounter deterministically.
type Engine struct {
	roller dice.Roller
	logger *zap.Logger
	ids    uuid.Generator
}

// EngineConfig configures an encounter engine. Every field is optional.
type EngineConfig struct {
	Roller      dice.Roller
	Logger      *zap.Logger
	IDGenerator uuid.Generator
}

// NewEngine creates an engine, defaulting to a time-seeded roller, a no-op
// logger, and random encounter ids
func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller(nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ids := cfg.IDGenerator
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}

	return &Engine{roller: roller, logger: logger, ids: ids}
}

// StartEncounter rolls initiative for the player character, their allies,
// and the hostile creatures, and returns a fresh encounter state
func (e *Engine) StartEncounter(pc *character.PlayerCharacter, hostiles, allies []*creature.Creature, difficulty string) (*EncounterState, error) {
	if pc == nil {
		return nil, errors.InvalidArgument("player character is required")
	}
	if difficulty == "" {
		difficulty = creature.DifficultyStandard
	}

	participants := []CombatantRef{{Kind: KindPC, ID: pc.ID}}
	for _, ally := range allies {
		participants = append(participants, CombatantRef{Kind: KindNPC, ID: ally.ID})
	}
	for _, hostile := range hostiles {
		participants = append(participants, CombatantRef{Kind: KindCreature, ID: hostile.ID})
	}

	turnOrder, err := e.rollInitiative(pc, hostiles, allies)
	if err != nil {
		return nil, err
	}

	state := &EncounterState{
		ID:           e.ids.New(),
		Participants: participants,
		TurnOrder:    turnOrder,
		ActiveIndex:  0,
		Round:        1,
		Difficulty:   difficulty,
		Meta:         make(map[string]any),
	}

	e.logger.Info("encounter started",
		zap.String("encounter_id", state.ID),
		zap.String("difficulty", difficulty),
		zap.Int("participants", len(participants)),
		zap.String("first", turnOrder[0].Ref.Key()),
	)
	return state, nil
}

// initiativeEntry pairs a turn order entry with its tie-break key
type initiativeEntry struct {
	entry  TurnOrderEntry
	roll   int
	dexMod int
}

// rollInitiative rolls d20 + initiative modifier for every combatant and
// sorts by roll descending, dexterity modifier descending, then id ascending.
// Ids are unique per encounter, so the order is total.
func (e *Engine) rollInitiative(pc *character.PlayerCharacter, hostiles, allies []*creature.Creature) ([]TurnOrderEntry, error) {
	var entries []initiativeEntry

	add := func(ref CombatantRef, combatant Combatant) error {
		roll, err := e.roller.Roll(1, 20, combatant.InitiativeModifier())
		if err != nil {
			return errors.Wrap(err, "failed to roll initiative")
		}
		entries = append(entries, initiativeEntry{
			entry:  TurnOrderEntry{Ref: ref, Initiative: roll.Total, IsConscious: combatant.IsConscious()},
			roll:   roll.Total,
			dexMod: combatant.DexterityModifier(),
		})
		return nil
	}

	if err := add(CombatantRef{Kind: KindPC, ID: pc.ID}, pc); err != nil {
		return nil, err
	}
	for _, ally := range allies {
		if err := add(CombatantRef{Kind: KindNPC, ID: ally.ID}, ally); err != nil {
			return nil, err
		}
	}
	for _, hostile := range hostiles {
		if err := add(CombatantRef{Kind: KindCreature, ID: hostile.ID}, hostile); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].roll != entries[j].roll {
			return entries[i].roll > entries[j].roll
		}
		if entries[i].dexMod != entries[j].dexMod {
			return entries[i].dexMod > entries[j].dexMod
		}
		return entries[i].entry.Ref.ID < entries[j].entry.Ref.ID
	})

	order := make([]TurnOrderEntry, 0, len(entries))
	for _, entry := range entries {
		order = append(order, entry.entry)
	}
	return order, nil
}

// ResolveAttack rolls an attack with the given action profile against the
// defender. A natural 20 always hits and doubles the damage; a dice
// expression that fails to parse deals zero dice damage.
func (e *Engine) ResolveAttack(attacker, defender Combatant, action *creature.Action) (*AttackResult, error) {
	if action == nil {
		return nil, errors.InvalidArgument("attack action is required")
	}

	roll, err := e.roller.Roll(1, 20, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll attack")
	}

	abilityMod := attacker.AbilityModifier(action.AttackAbility)
	attackMod := abilityMod + attacker.Proficiency() + action.ToHitBonus

	crit := roll.IsCrit
	if !crit && roll.RawTotal+attackMod < defender.EffectiveArmorClass() {
		return &AttackResult{}, nil
	}

	damage := e.rollDamage(action.DamageDice) + action.DamageBonus + abilityMod
	if crit {
		damage *= 2
	}
	defender.ApplyDamage(damage)

	e.logger.Debug("attack resolved",
		zap.String("attacker", attacker.CombatantID()),
		zap.String("defender", defender.CombatantID()),
		zap.Int("roll", roll.RawTotal),
		zap.Bool("crit", crit),
		zap.Int("damage", damage),
	)

	return &AttackResult{
		Hit:        true,
		Crit:       crit,
		Damage:     damage,
		TargetDied: !defender.IsConscious(),
	}, nil
}

// rollDamage rolls a damage expression, treating an unparsable expression as
// zero dice damage rather than an error
func (e *Engine) rollDamage(expression string) int {
	result, err := e.roller.RollExpression(expression)
	if err != nil {
		e.logger.Warn("unparsable damage expression", zap.String("expression", expression))
		return 0
	}
	return result.Total
}

// UseConsumable resolves a consumable from the player's inventory on a
// target, spending a charge and dropping the item when charges run out.
// Returns whether the item had an effect.
func UseConsumable(pc *character.PlayerCharacter, consumable *item.Consumable, target Combatant) bool {
	if consumable == nil || !consumable.UsableInCombat || consumable.Charges <= 0 {
		return false
	}

	effective := false
	switch {
	case strings.HasPrefix(consumable.EffectID, "heal_"):
		if amount, err := strconv.Atoi(strings.TrimPrefix(consumable.EffectID, "heal_")); err == nil && amount > 0 {
			target.Heal(amount)
			effective = true
		}
	case consumable.EffectID == "restore_health" || consumable.EffectID == "heal":
		target.Heal(25)
		effective = true
	}

	consumable.Charges--
	if consumable.Charges <= 0 {
		pc.RemoveConsumable(consumable.ID)
	}
	return effective
}

// ProcessTurnCommands runs the active combatant's commands until action
// points or an end condition stop it, then advances the turn. The rewards
// hook fires exactly once when the commands produce a victory.
func (e *Engine) ProcessTurnCommands(
	state *EncounterState,
	pc *character.PlayerCharacter,
	hostiles, allies []*creature.Creature,
	commands []Command,
	rewardsHook RewardsHook,
) (*EncounterResult, error) {
	if state == nil || len(state.TurnOrder) == 0 {
		return nil, errors.InvalidArgument("encounter has no turn order")
	}
	if state.Meta == nil {
		state.Meta = make(map[string]any)
	}

	registry := buildRegistry(pc, hostiles, allies)
	active := state.ActiveEntry()
	context := &TurnContext{Actor: active.Ref, RemainingAP: DefaultActionPoints}

	var log []CombatLogEntry
	appendLog := func(action string, target *CombatantRef, message string) {
		log = append(log, CombatLogEntry{
			Round:   state.Round,
			Actor:   context.Actor,
			Action:  action,
			Target:  target,
			Message: message,
		})
	}

	status := StatusOngoing
	var rewards map[string]any

	for i := range commands {
		command := &commands[i]
		if context.RemainingAP <= 0 || status != StatusOngoing {
			break
		}

		switch command.Type {
		case CommandAttack:
			if command.Target == nil || command.Action == nil {
				continue
			}
			attacker, err := lookupCombatant(registry, context.Actor)
			if err != nil {
				return nil, err
			}
			defender, err := lookupCombatant(registry, *command.Target)
			if err != nil {
				return nil, err
			}

			result, err := e.ResolveAttack(attacker, defender, command.Action)
			if err != nil {
				return nil, err
			}
			context.RemainingAP = max(0, context.RemainingAP-command.cost())

			verb := "misses"
			if result.Hit {
				verb = "hits"
			}
			appendLog("attack", command.Target,
				fmt.Sprintf("%s %s %s for %d damage", attacker.CombatantName(), verb, defender.CombatantName(), result.Damage))

			markConsciousness(state, registry)
			if end := checkEndConditions(state, pc, hostiles, allies); end != "" {
				status = end
			}

		case CommandItem:
			if command.Target == nil {
				continue
			}
			user, err := lookupCombatant(registry, context.Actor)
			if err != nil {
				return nil, err
			}
			target, err := lookupCombatant(registry, *command.Target)
			if err != nil {
				return nil, err
			}

			consumable := pc.FindConsumable(command.ItemID)
			if consumable == nil {
				return nil, errors.NotFoundf("consumable %q not in inventory", command.ItemID)
			}
			effective := UseConsumable(pc, consumable, target)
			context.RemainingAP = max(0, context.RemainingAP-command.cost())

			outcome := "no effect"
			if effective {
				outcome = "healed"
			}
			appendLog("item", command.Target,
				fmt.Sprintf("%s uses %s on %s (%s)", user.CombatantName(), consumable.Name, target.CombatantName(), outcome))

		case CommandDefend:
			appendLog("defend", nil, "takes a defensive stance")
			context.RemainingAP = max(0, context.RemainingAP-command.cost())

		case CommandFlee:
			appendLog("flee", nil, fmt.Sprintf("%s flees the encounter", context.Actor.Key()))
			context.RemainingAP = 0
			status = StatusFled
		}
	}

	if status == StatusVictory && rewardsHook != nil {
		if pending, _ := state.Meta[metaRewardsPending].(bool); pending {
			rewards = rewardsHook(state, pc, hostiles)
			delete(state.Meta, metaRewardsPending)
			state.Meta[metaRewardsGranted] = true
		}
	}

	e.advanceTurn(state)

	if status != StatusOngoing {
		e.logger.Info("encounter ended",
			zap.String("encounter_id", state.ID),
			zap.String("status", string(status)),
			zap.Int("round", state.Round),
		)
	}

	return &EncounterResult{
		State:   state,
		Context: context,
		Log:     log,
		Status:  status,
		Rewards: rewards,
	}, nil
}

// advanceTurn moves to the next conscious combatant, incrementing the round
// on wraparound. The loop is bounded by the starting index, so a fully
// unconscious order cannot spin forever.
func (e *Engine) advanceTurn(state *EncounterState) {
	if len(state.TurnOrder) == 0 {
		return
	}
	startingIndex := state.ActiveIndex
	for {
		state.ActiveIndex = (state.ActiveIndex + 1) % len(state.TurnOrder)
		if state.ActiveIndex == 0 {
			state.Round++
		}
		if state.TurnOrder[state.ActiveIndex].IsConscious {
			return
		}
		if state.ActiveIndex == startingIndex {
			return
		}
	}
}

func buildRegistry(pc *character.PlayerCharacter, hostiles, allies []*creature.Creature) map[string]Combatant {
	registry := make(map[string]Combatant, 1+len(hostiles)+len(allies))
	registry[CombatantRef{Kind: KindPC, ID: pc.ID}.Key()] = pc
	for _, hostile := range hostiles {
		registry[CombatantRef{Kind: KindCreature, ID: hostile.ID}.Key()] = hostile
	}
	for _, ally := range allies {
		registry[CombatantRef{Kind: KindNPC, ID: ally.ID}.Key()] = ally
	}
	return registry
}

// lookupCombatant resolves a reference or fails hard; a dangling reference
// is a programming error, not a skippable condition
func lookupCombatant(registry map[string]Combatant, ref CombatantRef) (Combatant, error) {
	combatant, ok := registry[ref.Key()]
	if !ok {
		return nil, errors.NotFoundf("unknown combatant %s", ref.Key())
	}
	return combatant, nil
}

// markConsciousness syncs the turn order entries with combatant state
func markConsciousness(state *EncounterState, registry map[string]Combatant) {
	for i := range state.TurnOrder {
		if combatant, ok := registry[state.TurnOrder[i].Ref.Key()]; ok {
			state.TurnOrder[i].IsConscious = combatant.IsConscious()
		}
	}
}

// checkEndConditions reports victory when no hostile stands, defeat when the
// player character and every ally are down, and an empty status otherwise
func checkEndConditions(state *EncounterState, pc *character.PlayerCharacter, hostiles, allies []*creature.Creature) Status {
	if !pc.Alive {
		anyAllyStanding := false
		for _, ally := range allies {
			if ally.Alive {
				anyAllyStanding = true
				break
			}
		}
		if !anyAllyStanding {
			return StatusDefeat
		}
	}

	for _, hostile := range hostiles {
		if hostile.Alive {
			return ""
		}
	}
	if granted, _ := state.Meta[metaRewardsGranted].(bool); !granted {
		state.Meta[metaRewardsPending] = true
	}
	return StatusVictory
}
