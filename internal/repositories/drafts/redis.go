package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/chargen/internal/domain/draft"
	dnderr "github.com/KirkDiggler/chargen/internal/errors"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider

	// TTL is how long an unfinished draft is kept (default: 7 days).
	// Finished drafts do not expire.
	TTL time.Duration
}

type redisRepo struct {
	client redis.UniversalClient
	clock  TimeProvider
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed draft repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	clock := cfg.TimeProvider
	if clock == nil {
		clock = UTCClock{}
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &redisRepo{
		client: cfg.Client,
		clock:  clock,
		ttl:    ttl,
	}
}

// NewRedis creates a Redis repository with defaults
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("draft:%s", id)
}

func (r *redisRepo) ownerDraftsKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:drafts", ownerID)
}

func (r *redisRepo) expiration(d *draft.Draft) time.Duration {
	if d.IsFinished() {
		return 0
	}
	return r.ttl
}

// Create stores a new draft
func (r *redisRepo) Create(ctx context.Context, d *draft.Draft) error {
	if err := validate(d); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, r.key(d.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check draft existence: %w", err)
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("draft with ID '%s' already exists", d.ID).
			WithMeta("draft_id", d.ID)
	}

	d.CreatedAt = r.clock.Now()
	d.UpdatedAt = d.CreatedAt

	return r.set(ctx, d)
}

func (r *redisRepo) set(ctx context.Context, d *draft.Draft) error {
	jsonData, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(d.ID), string(jsonData), r.expiration(d))
	pipe.SAdd(ctx, r.ownerDraftsKey(d.OwnerID), d.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}
	return nil
}

// Get retrieves a draft by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*draft.Draft, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("draft ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, dnderr.NotFoundf("draft with ID '%s' not found", id).
			WithMeta("draft_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var d draft.Draft
	if err := json.Unmarshal(jsonData, &d); err != nil {
		return nil, dnderr.DataIntegrity(err, "failed to unmarshal draft").
			WithMeta("draft_id", id)
	}
	return &d, nil
}

// Update replaces an existing draft
func (r *redisRepo) Update(ctx context.Context, d *draft.Draft) error {
	if err := validate(d); err != nil {
		return err
	}

	existing, err := r.Get(ctx, d.ID)
	if err != nil {
		return err
	}

	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = r.clock.Now()

	if existing.OwnerID != d.OwnerID {
		if err := r.client.SRem(ctx, r.ownerDraftsKey(existing.OwnerID), d.ID).Err(); err != nil {
			return fmt.Errorf("failed to update draft owner index: %w", err)
		}
	}

	return r.set(ctx, d)
}

// Delete removes a draft
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	d, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerDraftsKey(d.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// ListByOwner returns an owner's drafts, oldest first. IDs whose draft has
// expired are dropped from the owner index.
func (r *redisRepo) ListByOwner(ctx context.Context, ownerID string) ([]*draft.Draft, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerDraftsKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list draft IDs: %w", err)
	}

	loaded := make([]*draft.Draft, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			d, err := r.Get(gctx, id)
			if dnderr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get draft %s: %w", id, err)
			}
			loaded[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*draft.Draft, 0, len(ids))
	var stale []any
	for i, d := range loaded {
		if d == nil {
			stale = append(stale, ids[i])
			continue
		}
		out = append(out, d)
	}
	if len(stale) > 0 {
		log.Printf("Dropping %d expired drafts from owner %s", len(stale), ownerID)
		if err := r.client.SRem(ctx, r.ownerDraftsKey(ownerID), stale...).Err(); err != nil {
			log.Printf("Failed to drop expired drafts: %v", err)
		}
	}

	sortByCreated(out)
	return out, nil
}
