// Package encounters persists encounter state between turns so an encounter
// can be resumed across process restarts.
package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockencrepo -source=repository.go

import (
	"context"
	"time"

	"github.com/chronicler-rpg/engine/internal/combat"
)

// Record is the stored form of an encounter: the engine state plus the
// campaign it belongs to and its lifecycle status
type Record struct {
	ID         string                  `json:"id"`
	CampaignID string                  `json:"campaign_id"`
	Status     combat.Status           `json:"status"`
	State      *combat.EncounterState  `json:"state"`
	Log        []combat.CombatLogEntry `json:"log,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// Repository defines the interface for encounter storage operations
type Repository interface {
	// Create stores a new encounter record
	Create(ctx context.Context, record *Record) error

	// Get retrieves an encounter record by ID
	Get(ctx context.Context, id string) (*Record, error)

	// Update replaces an existing encounter record
	Update(ctx context.Context, record *Record) error

	// Delete removes an encounter record
	Delete(ctx context.Context, id string) error

	// ListByCampaign retrieves all encounter records for a campaign
	ListByCampaign(ctx context.Context, campaignID string) ([]*Record, error)

	// GetOngoingByCampaign retrieves the ongoing encounter for a campaign,
	// or nil when every encounter has ended
	GetOngoingByCampaign(ctx context.Context, campaignID string) (*Record, error)
}
