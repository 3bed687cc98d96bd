package encounters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/chronicler-rpg/engine/internal/combat"
	"github.com/chronicler-rpg/engine/internal/errors"
)

const (
	encounterKeyPrefix    = "encounter:"
	campaignEncountersKey = "campaign:%s:encounters"

	// Stale encounters expire after a week
	encounterTTL = 7 * 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       *redis.Client
	TimeProvider TimeProvider
	TTL          time.Duration
}

type redisRepository struct {
	client *redis.Client
	time   TimeProvider
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed encounter repository
func NewRedisRepository(cfg *RedisRepoConfig) (Repository, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, errors.InvalidArgument("redis client is required")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = realTimeProvider{}
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = encounterTTL
	}

	return &redisRepository{client: cfg.Client, time: timeProvider, ttl: ttl}, nil
}

// NewRedis creates a Redis-backed encounter repository with default configuration
func NewRedis(client *redis.Client) Repository {
	repo, err := NewRedisRepository(&RedisRepoConfig{Client: client})
	if err != nil {
		panic(err)
	}
	return repo
}

func (r *redisRepository) set(ctx context.Context, record *Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to serialize encounter record")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, encounterKeyPrefix+record.ID, string(data), r.ttl)
	pipe.SAdd(ctx, fmt.Sprintf(campaignEncountersKey, record.CampaignID), record.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to write encounter record")
	}
	return nil
}

// Create stores a new encounter record
func (r *redisRepository) Create(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return errors.InvalidArgument("encounter record requires an id")
	}

	now := r.time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	return r.set(ctx, record)
}

// Get retrieves an encounter record by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, errors.InvalidArgument("encounter id is required")
	}

	data, err := r.client.Get(ctx, encounterKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("encounter not found: %s", id)
		}
		return nil, errors.Wrap(err, "failed to get encounter record")
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize encounter record")
	}
	return &record, nil
}

// Update replaces an existing encounter record
func (r *redisRepository) Update(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return errors.InvalidArgument("encounter record requires an id")
	}

	record.UpdatedAt = r.time.Now()
	return r.set(ctx, record)
}

// Delete removes an encounter record
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	record, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, encounterKeyPrefix+id)
	pipe.SRem(ctx, fmt.Sprintf(campaignEncountersKey, record.CampaignID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to delete encounter record")
	}
	return nil
}

// ListByCampaign retrieves all encounter records for a campaign
func (r *redisRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*Record, error) {
	if campaignID == "" {
		return nil, errors.InvalidArgument("campaign id is required")
	}

	ids, err := r.client.SMembers(ctx, fmt.Sprintf(campaignEncountersKey, campaignID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list campaign encounters")
	}

	records := make([]*Record, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			record, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetOngoingByCampaign retrieves the ongoing encounter for a campaign
func (r *redisRepository) GetOngoingByCampaign(ctx context.Context, campaignID string) (*Record, error) {
	records, err := r.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if record.Status == combat.StatusOngoing {
			return record, nil
		}
	}
	return nil, nil
}
