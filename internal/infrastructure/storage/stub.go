// Package storage provides object storage for archived export payloads.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	appexport "github.com/resale/backend/internal/application/export"
)

// MemoryArchiveStorage keeps archived payloads in process memory. Use this
// for development and tests until a real bucket is configured.
type MemoryArchiveStorage struct {
	// BaseURL is the base URL for generated download links
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryArchiveStorage creates an empty in-memory archive.
func NewMemoryArchiveStorage() *MemoryArchiveStorage {
	return &MemoryArchiveStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure MemoryArchiveStorage implements ArchiveStorage
var _ appexport.ArchiveStorage = (*MemoryArchiveStorage)(nil)

// Upload stores the payload in memory.
func (s *MemoryArchiveStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	s.objects[storageKey] = append([]byte(nil), data...)
	s.mu.Unlock()
	return nil
}

// GenerateDownloadURL generates a deterministic fake download URL.
func (s *MemoryArchiveStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey, expiresAt, nil
}

// DeleteObject removes a stored payload.
func (s *MemoryArchiveStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	delete(s.objects, storageKey)
	s.mu.Unlock()
	return nil
}

// ObjectExists reports whether a payload was stored under the key.
func (s *MemoryArchiveStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	_, ok := s.objects[storageKey]
	s.mu.RUnlock()
	return ok, nil
}

// Object returns a stored payload, for tests.
func (s *MemoryArchiveStorage) Object(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}
