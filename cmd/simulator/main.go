// Command simulator runs a scripted encounter end to end: it builds a small
// party, starts an encounter against a scaled creature pack, plays every turn
// until the encounter ends, and persists the encounter state after each turn.
package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chronicler-rpg/engine/internal/character"
	"github.com/chronicler-rpg/engine/internal/combat"
	"github.com/chronicler-rpg/engine/internal/config"
	"github.com/chronicler-rpg/engine/internal/creature"
	"github.com/chronicler-rpg/engine/internal/dice"
	"github.com/chronicler-rpg/engine/internal/npc"
	"github.com/chronicler-rpg/engine/internal/party"
	"github.com/chronicler-rpg/engine/internal/repositories/encounters"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var rng *rand.Rand
	if cfg.Simulator.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Simulator.Seed))
		logger.Info("using seeded roller", zap.Int64("seed", cfg.Simulator.Seed))
	}

	repo := buildRepository(cfg, logger)

	engine := combat.NewEngine(&combat.EngineConfig{
		Roller: dice.NewRandomRoller(rng),
		Logger: logger,
	})

	adventurers := buildParty(logger)
	hostiles := buildHostiles(logger, adventurers.PC.Level, cfg.Simulator.Difficulty)

	var allies []*creature.Creature
	for _, companion := range adventurers.Companions {
		allies = append(allies, companion.StatBlock)
	}

	state, err := engine.StartEncounter(adventurers.PC, hostiles, allies, cfg.Simulator.Difficulty)
	if err != nil {
		logger.Fatal("failed to start encounter", zap.Error(err))
	}

	ctx := context.Background()
	record := &encounters.Record{
		ID:         state.ID,
		CampaignID: cfg.Simulator.CampaignID,
		Status:     combat.StatusOngoing,
		State:      state,
	}
	if err := repo.Create(ctx, record); err != nil {
		logger.Fatal("failed to persist encounter", zap.Error(err))
	}

	runEncounter(ctx, engine, repo, record, adventurers, hostiles, allies, logger)
}

// buildRepository connects to Redis when an address is configured and falls
// back to in-memory storage when the connection fails
func buildRepository(cfg *config.Config, logger *zap.Logger) encounters.Repository {
	if cfg.Redis.Addr == "" {
		return encounters.NewInMemoryRepository()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, using in-memory storage", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return encounters.NewInMemoryRepository()
	}

	logger.Info("using redis for encounter storage", zap.String("addr", cfg.Redis.Addr))
	return encounters.NewRedis(client)
}

func buildParty(logger *zap.Logger) *party.Party {
	pc, err := character.New(&character.Config{
		ID:   "pc.adventurer",
		Name: "Adventurer",
		BaseAbilities: map[string]int{
			"strength":     15,
			"dexterity":    14,
			"constitution": 13,
		},
		Race:  &character.Race{ID: "race.human", Name: "Human", AbilityBonuses: map[string]int{"strength": 1}},
		Class: &character.Class{ID: "class.fighter", Name: "Fighter", HitDie: 10, SaveProficiencies: []string{"fortitude"}},
		Level: 3,
	})
	if err != nil {
		logger.Fatal("failed to build player character", zap.Error(err))
	}

	hound, err := creature.New(&creature.Config{
		ID:         "creature.hound",
		Name:       "War Hound",
		Level:      2,
		HitDie:     8,
		ArmorClass: 12,
		Abilities:  map[string]int{"strength": 14, "dexterity": 14, "constitution": 12},
		Actions: []*creature.Action{
			{Name: "Bite", AttackAbility: "strength", DamageDice: "1d6"},
		},
	})
	if err != nil {
		logger.Fatal("failed to build companion", zap.Error(err))
	}

	adventurers := party.New(pc)
	adventurers.AddCompanion(npc.New("npc.hound", hound, &npc.ScalingProfile{
		BaseLevel:         2,
		MinLevel:          1,
		MaxLevel:          10,
		AttackProgression: 1,
		DamageProgression: 1,
	}), true)
	return adventurers
}

func buildHostiles(logger *zap.Logger, playerLevel int, difficulty string) []*creature.Creature {
	template, err := creature.New(&creature.Config{
		ID:         "creature.raider",
		Name:       "Raider",
		Level:      2,
		HitDie:     8,
		ArmorClass: 13,
		Abilities:  map[string]int{"strength": 14, "dexterity": 12, "constitution": 12},
		Actions: []*creature.Action{
			{Name: "Axe Swing", AttackAbility: "strength", DamageDice: "1d8"},
		},
		Tiers: []*creature.TierTemplate{
			{Name: "raider_veteran", Difficulty: creature.DifficultyHard, LevelAdjustment: 1, AttackAdjustment: 1, HitPointAdjustment: 4},
		},
	})
	if err != nil {
		logger.Fatal("failed to build hostile template", zap.Error(err))
	}

	raider := npc.New("npc.raider", template, &npc.ScalingProfile{
		BaseLevel: 2,
		MinLevel:  1,
		MaxLevel:  8,
	})

	scaled := raider.ScaledStatBlock(playerLevel, difficulty)
	scaled.ID = "creature.raider.1"
	second := scaled.Clone()
	second.ID = "creature.raider.2"

	return []*creature.Creature{scaled, second}
}

// runEncounter plays scripted turns until the encounter ends, persisting the
// record after every processed turn
func runEncounter(
	ctx context.Context,
	engine *combat.Engine,
	repo encounters.Repository,
	record *encounters.Record,
	adventurers *party.Party,
	hostiles, allies []*creature.Creature,
	logger *zap.Logger,
) {
	state := record.State
	pcAction := &creature.Action{Name: "Longsword", AttackAbility: "strength", DamageDice: "1d8"}

	rewards := func(_ *combat.EncounterState, _ *character.PlayerCharacter, defeated []*creature.Creature) map[string]any {
		xp := 0
		for _, hostile := range defeated {
			xp += hostile.Level * 50
		}
		adventurers.GrantPartyXP(xp, state.Difficulty)
		return map[string]any{"xp": xp}
	}

	for turn := 0; turn < 200; turn++ {
		active := state.ActiveEntry()
		commands := commandsFor(active, adventurers.PC, pcAction, hostiles, allies)

		result, err := engine.ProcessTurnCommands(state, adventurers.PC, hostiles, allies, commands, rewards)
		if err != nil {
			logger.Fatal("failed to process turn", zap.Error(err))
		}

		for _, entry := range result.Log {
			logger.Info("combat log", zap.Int("round", entry.Round), zap.String("entry", entry.Message))
		}

		record.Status = result.Status
		record.Log = append(record.Log, result.Log...)
		if err := repo.Update(ctx, record); err != nil {
			logger.Warn("failed to persist encounter", zap.Error(err))
		}

		if result.Status != combat.StatusOngoing {
			logger.Info("encounter finished",
				zap.String("status", string(result.Status)),
				zap.Int("rounds", state.Round),
				zap.Int("pc_level", adventurers.PC.Level),
				zap.Int("pc_xp", adventurers.PC.XP),
				zap.Any("rewards", result.Rewards),
			)
			return
		}
	}

	logger.Warn("encounter hit the turn cap without ending")
}

// commandsFor picks one attack for whichever side is acting
func commandsFor(active *combat.TurnOrderEntry, pc *character.PlayerCharacter, pcAction *creature.Action, hostiles, allies []*creature.Creature) []combat.Command {
	if active == nil || !active.IsConscious {
		return nil
	}

	switch active.Ref.Kind {
	case combat.KindPC:
		if target := firstStanding(hostiles); target != nil {
			return []combat.Command{{
				Type:   combat.CommandAttack,
				Target: &combat.CombatantRef{Kind: combat.KindCreature, ID: target.ID},
				Action: pcAction,
			}}
		}
	case combat.KindNPC:
		ally := findCreature(allies, active.Ref.ID)
		target := firstStanding(hostiles)
		if ally != nil && target != nil && len(ally.Actions) > 0 {
			return []combat.Command{{
				Type:   combat.CommandAttack,
				Target: &combat.CombatantRef{Kind: combat.KindCreature, ID: target.ID},
				Action: ally.Actions[0],
			}}
		}
	case combat.KindCreature:
		hostile := findCreature(hostiles, active.Ref.ID)
		if hostile == nil || len(hostile.Actions) == 0 {
			return nil
		}
		target := &combat.CombatantRef{Kind: combat.KindPC, ID: pc.ID}
		if !pc.IsConscious() {
			standing := firstStanding(allies)
			if standing == nil {
				return nil
			}
			target = &combat.CombatantRef{Kind: combat.KindNPC, ID: standing.ID}
		}
		return []combat.Command{{
			Type:   combat.CommandAttack,
			Target: target,
			Action: hostile.Actions[0],
		}}
	}
	return nil
}

func firstStanding(pack []*creature.Creature) *creature.Creature {
	for _, member := range pack {
		if member.Alive && member.CurrentHitPoints > 0 {
			return member
		}
	}
	return nil
}

func findCreature(pack []*creature.Creature, id string) *creature.Creature {
	for _, member := range pack {
		if member.ID == id {
			return member
		}
	}
	return nil
}
