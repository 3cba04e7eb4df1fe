// Package session defines the draft listing session and its storage contract.
// A draft holds an analyzed garment record and staged image files between the
// analysis step and the final publish.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/resale/backend/internal/domain/listing"
)

var (
	// ErrNotFound indicates the draft id does not exist or has expired
	ErrNotFound = errors.New("session: draft not found")
	// ErrTooManyImages indicates an image batch over the photo cap
	ErrTooManyImages = errors.New("session: too many images")
)

// Draft is one in-progress listing session.
type Draft struct {
	ID uuid.UUID `json:"id"`
	// Record is the analyzed garment record staged for publishing
	Record listing.GarmentRecord `json:"record"`
	// ImagePaths are local temp files staged for upload, in photo order
	ImagePaths []string  `json:"image_paths"`
	CreatedAt  time.Time `json:"created_at"`
	// LastActiveAt advances on every read or write; the sweeper expires
	// drafts by this timestamp
	LastActiveAt time.Time `json:"last_active_at"`
}

// NewDraft creates a draft around an analyzed record.
func NewDraft(record listing.GarmentRecord, now time.Time) *Draft {
	return &Draft{
		ID:           uuid.New(),
		Record:       record,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Touch advances the activity timestamp.
func (d *Draft) Touch(now time.Time) {
	d.LastActiveAt = now
}

// Store persists drafts between requests. Implementations must treat Save as
// an upsert and return ErrNotFound from Get and Delete for unknown ids.
type Store interface {
	Save(ctx context.Context, draft *Draft) error
	Get(ctx context.Context, id uuid.UUID) (*Draft, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Expired lists drafts whose last activity predates the cutoff.
	Expired(ctx context.Context, cutoff time.Time) ([]*Draft, error)
}
