// Package draft manages listing draft sessions: intake of analyzed records,
// staged image batches and their cleanup. Each draft serializes its own image
// mutations so a new batch never races the deletion of a stale one.
package draft

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resale/backend/internal/domain/listing"
	"github.com/resale/backend/internal/domain/session"
)

// Manager coordinates draft lifecycle against the session store.
type Manager struct {
	store  session.Store
	logger *zap.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewManager creates a draft manager over the given store.
func NewManager(store session.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:  store,
		logger: logger,
		locks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

// Create opens a draft session around an analyzed record and its staged
// image files.
func (m *Manager) Create(ctx context.Context, record listing.GarmentRecord, imagePaths []string) (*session.Draft, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if len(imagePaths) > listing.MaxPhotos {
		return nil, session.ErrTooManyImages
	}

	draft := session.NewDraft(record, time.Now())
	draft.ImagePaths = append([]string(nil), imagePaths...)

	if err := m.store.Save(ctx, draft); err != nil {
		return nil, err
	}

	m.logger.Info("draft created",
		zap.String("draft_id", draft.ID.String()),
		zap.Int("images", len(draft.ImagePaths)))
	return draft, nil
}

// Get loads a draft and advances its activity timestamp.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*session.Draft, error) {
	draft, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.Touch(time.Now())
	if err := m.store.Save(ctx, draft); err != nil {
		m.logger.Warn("failed to refresh draft activity",
			zap.String("draft_id", id.String()), zap.Error(err))
	}
	return draft, nil
}

// ReplaceImages swaps the draft's staged image batch and deletes the stale
// files. The swap runs under the draft's mutex so two concurrent batches
// cannot delete each other's files.
func (m *Manager) ReplaceImages(ctx context.Context, id uuid.UUID, imagePaths []string) (*session.Draft, error) {
	if len(imagePaths) > listing.MaxPhotos {
		return nil, session.ErrTooManyImages
	}

	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	draft, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	stale := draft.ImagePaths
	draft.ImagePaths = append([]string(nil), imagePaths...)
	draft.Touch(time.Now())

	if err := m.store.Save(ctx, draft); err != nil {
		return nil, err
	}

	m.removeFiles(stale)
	return draft, nil
}

// Delete removes a draft and its staged files.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	draft, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}

	m.removeFiles(draft.ImagePaths)
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.locks, id)
	m.mu.Unlock()
	return nil
}

// lockFor returns the per-draft mutex, creating it on first use.
func (m *Manager) lockFor(id uuid.UUID) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[id] = lock
	}
	return lock
}

// removeFiles deletes staged files, tolerating ones already gone.
func (m *Manager) removeFiles(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			m.logger.Warn("failed to remove staged image",
				zap.String("path", p), zap.Error(err))
		}
	}
}
