package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/KirkDiggler/chargen/internal/domain/draft"
	dnderr "github.com/KirkDiggler/chargen/internal/errors"
)

// InMemoryRepository keeps drafts in process memory. Drafts are stored as
// encoded copies, so callers never share a live hero with the store.
type InMemoryRepository struct {
	mu     sync.RWMutex
	drafts map[string][]byte
	owners map[string]string
	clock  TimeProvider
}

// NewInMemoryRepository creates a new in-memory draft repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		drafts: make(map[string][]byte),
		owners: make(map[string]string),
		clock:  UTCClock{},
	}
}

// Create stores a new draft
func (r *InMemoryRepository) Create(_ context.Context, d *draft.Draft) error {
	if err := validate(d); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drafts[d.ID]; exists {
		return dnderr.AlreadyExistsf("draft with ID '%s' already exists", d.ID).
			WithMeta("draft_id", d.ID)
	}

	d.CreatedAt = r.clock.Now()
	d.UpdatedAt = d.CreatedAt
	return r.store(d)
}

// Get retrieves a draft by ID
func (r *InMemoryRepository) Get(_ context.Context, id string) (*draft.Draft, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("draft ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.load(id)
}

// Update replaces an existing draft
func (r *InMemoryRepository) Update(_ context.Context, d *draft.Draft) error {
	if err := validate(d); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.load(d.ID)
	if err != nil {
		return err
	}

	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = r.clock.Now()
	return r.store(d)
}

// Delete removes a draft
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("draft ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drafts[id]; !exists {
		return dnderr.NotFoundf("draft with ID '%s' not found", id).
			WithMeta("draft_id", id)
	}

	delete(r.drafts, id)
	delete(r.owners, id)
	return nil
}

// ListByOwner returns an owner's drafts, oldest first
func (r *InMemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*draft.Draft, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*draft.Draft
	for id, owner := range r.owners {
		if owner != ownerID {
			continue
		}
		d, err := r.load(id)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	sortByCreated(out)
	return out, nil
}

func (r *InMemoryRepository) store(d *draft.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	r.drafts[d.ID] = raw
	r.owners[d.ID] = d.OwnerID
	return nil
}

func (r *InMemoryRepository) load(id string) (*draft.Draft, error) {
	raw, exists := r.drafts[id]
	if !exists {
		return nil, dnderr.NotFoundf("draft with ID '%s' not found", id).
			WithMeta("draft_id", id)
	}

	var d draft.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &d, nil
}

func validate(d *draft.Draft) error {
	if d == nil {
		return dnderr.InvalidArgument("draft cannot be nil")
	}
	if d.ID == "" {
		return dnderr.InvalidArgument("draft ID is required")
	}
	if d.OwnerID == "" {
		return dnderr.InvalidArgument("draft owner ID is required")
	}
	return nil
}
