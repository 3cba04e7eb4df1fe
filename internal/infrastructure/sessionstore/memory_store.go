// Package sessionstore provides draft session persistence: an in-memory
// store for single-instance deployments and a Redis-backed store for
// distributed ones, plus the background sweeper that expires stale drafts.
package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resale/backend/internal/domain/session"
)

// MemoryStore keeps drafts in process memory. Suitable for development and
// single-instance deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]*session.Draft
}

// NewMemoryStore creates an empty in-memory draft store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[uuid.UUID]*session.Draft)}
}

// Save upserts a draft. The store keeps its own copy so later mutations by
// the caller do not leak in.
func (s *MemoryStore) Save(ctx context.Context, draft *session.Draft) error {
	cp := *draft
	cp.ImagePaths = append([]string(nil), draft.ImagePaths...)

	s.mu.Lock()
	s.drafts[draft.ID] = &cp
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the draft.
func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*session.Draft, error) {
	s.mu.RLock()
	d, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, session.ErrNotFound
	}
	cp := *d
	cp.ImagePaths = append([]string(nil), d.ImagePaths...)
	return &cp, nil
}

// Delete removes a draft.
func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return session.ErrNotFound
	}
	delete(s.drafts, id)
	return nil
}

// Expired lists drafts whose last activity predates the cutoff.
func (s *MemoryStore) Expired(ctx context.Context, cutoff time.Time) ([]*session.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*session.Draft
	for _, d := range s.drafts {
		if d.LastActiveAt.Before(cutoff) {
			cp := *d
			cp.ImagePaths = append([]string(nil), d.ImagePaths...)
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Ensure MemoryStore implements session.Store
var _ session.Store = (*MemoryStore)(nil)
