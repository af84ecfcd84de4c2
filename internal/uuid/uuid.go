// Package uuid issues draft IDs. Tests swap in the mock generator to pin them.
package uuid

//go:generate mockgen -destination=mock/mock.go -package=mockuuid -source=uuid.go

import (
	"github.com/google/uuid"
)

// Generator creates identifiers for new drafts
type Generator interface {
	New() string
}

// RandomGenerator issues time-ordered (version 7) UUIDs, so draft IDs sort in
// creation order in Redis scans and listings
type RandomGenerator struct{}

// New returns a fresh draft ID. If the clock-based form cannot be built it
// falls back to a purely random one.
func (g *RandomGenerator) New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewRandomGenerator creates a RandomGenerator
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}
