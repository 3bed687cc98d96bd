// Package uuid mints encounter and entity identifiers behind a small
// interface so callers can substitute deterministic ids in tests.
package uuid

import (
	"github.com/google/uuid"
)

// Generator mints unique string identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator is the production Generator, backed by random v4 UUIDs
type GoogleUUIDGenerator struct{}

// New returns a fresh random UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
