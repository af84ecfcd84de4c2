// Package drafts persists character drafts between sessions
package drafts

//go:generate mockgen -destination=mock/mock.go -package=mockdrafts -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/chargen/internal/domain/draft"
)

// Repository defines the interface for draft persistence
type Repository interface {
	// Create stores a new draft
	Create(ctx context.Context, d *draft.Draft) error

	// Get retrieves a draft by ID
	Get(ctx context.Context, id string) (*draft.Draft, error)

	// Update replaces an existing draft
	Update(ctx context.Context, d *draft.Draft) error

	// Delete removes a draft
	Delete(ctx context.Context, id string) error

	// ListByOwner returns an owner's drafts, oldest first
	ListByOwner(ctx context.Context, ownerID string) ([]*draft.Draft, error)
}

// TimeProvider supplies timestamps so tests can pin them
type TimeProvider interface {
	Now() time.Time
}
