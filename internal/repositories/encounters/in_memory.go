package encounters

import (
	"context"
	"sync"

	"github.com/chronicler-rpg/engine/internal/combat"
	"github.com/chronicler-rpg/engine/internal/errors"
)

type inMemoryRepository struct {
	mu         sync.RWMutex
	records    map[string]*Record
	byCampaign map[string][]string // campaignID -> encounter IDs
	time       TimeProvider
}

// NewInMemoryRepository creates a new in-memory encounter repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		records:    make(map[string]*Record),
		byCampaign: make(map[string][]string),
		time:       realTimeProvider{},
	}
}

// Create stores a new encounter record
func (r *inMemoryRepository) Create(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return errors.InvalidArgument("encounter record requires an id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return errors.InvalidArgumentf("encounter %s already exists", record.ID)
	}

	now := r.time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	r.records[record.ID] = record
	r.byCampaign[record.CampaignID] = append(r.byCampaign[record.CampaignID], record.ID)
	return nil
}

// Get retrieves an encounter record by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, errors.NotFoundf("encounter not found: %s", id)
	}
	return record, nil
}

// Update replaces an existing encounter record
func (r *inMemoryRepository) Update(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return errors.InvalidArgument("encounter record requires an id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; !exists {
		return errors.NotFoundf("encounter not found: %s", record.ID)
	}

	record.UpdatedAt = r.time.Now()
	r.records[record.ID] = record
	return nil
}

// Delete removes an encounter record
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return errors.NotFoundf("encounter not found: %s", id)
	}

	delete(r.records, id)

	campaignRecords := r.byCampaign[record.CampaignID]
	for i, rid := range campaignRecords {
		if rid == id {
			r.byCampaign[record.CampaignID] = append(campaignRecords[:i], campaignRecords[i+1:]...)
			break
		}
	}
	return nil
}

// ListByCampaign retrieves all encounter records for a campaign
func (r *inMemoryRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byCampaign[campaignID]
	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		if record, exists := r.records[id]; exists {
			records = append(records, record)
		}
	}
	return records, nil
}

// GetOngoingByCampaign retrieves the ongoing encounter for a campaign
func (r *inMemoryRepository) GetOngoingByCampaign(ctx context.Context, campaignID string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.byCampaign[campaignID] {
		if record, exists := r.records[id]; exists && record.Status == combat.StatusOngoing {
			return record, nil
		}
	}
	return nil, nil
}
