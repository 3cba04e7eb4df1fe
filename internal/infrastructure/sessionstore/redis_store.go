package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/resale/backend/internal/domain/session"
)

const (
	draftKeyPrefix   = "draft:session:"
	draftActivityKey = "draft:activity"
)

// RedisStore persists drafts in Redis for distributed deployments. Drafts
// live under a per-id key; a sorted set scored by last activity backs the
// expiry scan.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	// DraftTTL is the hard upper bound on a draft's lifetime. The sweeper
	// usually removes drafts earlier; the TTL is the backstop when the
	// sweeper is down.
	DraftTTL time.Duration
}

// NewRedisStore creates a Redis-backed draft store and verifies the
// connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.DraftTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// NewRedisStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Save upserts a draft and records its activity score.
func (s *RedisStore) Save(ctx context.Context, draft *session.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, draftKeyPrefix+draft.ID.String(), data, s.ttl)
	pipe.ZAdd(ctx, draftActivityKey, redis.Z{
		Score:  float64(draft.LastActiveAt.UnixNano()),
		Member: draft.ID.String(),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Get fetches a draft by id.
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*session.Draft, error) {
	data, err := s.client.Get(ctx, draftKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var draft session.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

// Delete removes a draft and its activity entry.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.client.Del(ctx, draftKeyPrefix+id.String()).Result()
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	s.client.ZRem(ctx, draftActivityKey, id.String())
	if deleted == 0 {
		return session.ErrNotFound
	}
	return nil
}

// Expired lists drafts whose last activity predates the cutoff. Activity
// entries whose draft key already hit its TTL are pruned as they are seen.
func (s *RedisStore) Expired(ctx context.Context, cutoff time.Time) ([]*session.Draft, error) {
	ids, err := s.client.ZRangeByScore(ctx, draftActivityKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", cutoff.UnixNano()),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan expired drafts: %w", err)
	}

	var out []*session.Draft
	for _, raw := range ids {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			s.client.ZRem(ctx, draftActivityKey, raw)
			continue
		}
		draft, getErr := s.Get(ctx, id)
		if errors.Is(getErr, session.ErrNotFound) {
			s.client.ZRem(ctx, draftActivityKey, raw)
			continue
		}
		if getErr != nil {
			return nil, getErr
		}
		out = append(out, draft)
	}
	return out, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements session.Store
var _ session.Store = (*RedisStore)(nil)
