// Package export orchestrates peer platform exports: it renders the payload
// for each requested platform, archives the rendered document and hands back
// a download link when an archive bucket is configured.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainexport "github.com/resale/backend/internal/domain/export"
	"github.com/resale/backend/internal/domain/session"
)

// ArchiveStorage defines the interface for archiving rendered export
// payloads. Implemented by the infrastructure layer (S3, MinIO, in-memory).
type ArchiveStorage interface {
	// Upload writes a rendered payload under the given key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL generates a presigned URL for fetching a payload
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an archived payload
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an archived payload exists
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ServiceConfig holds configuration for the export service
type ServiceConfig struct {
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
}

// DefaultServiceConfig returns the default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		DownloadURLExpiry: 15 * time.Minute,
	}
}

// Request carries everything needed to render exports for one draft.
type Request struct {
	Draft *session.Draft
	// Price is the chosen listing price the formatters adjust per platform
	Price decimal.Decimal
	// PhotoURLs are the hosted photo URLs, in listing order
	PhotoURLs []string
	// Platforms selects which platforms to render; empty means all
	Platforms []string
}

// PlatformExport is one rendered export, optionally with an archive link.
type PlatformExport struct {
	Payload     domainexport.Payload `json:"payload"`
	StorageKey  string               `json:"storage_key,omitempty"`
	DownloadURL string               `json:"download_url,omitempty"`
	ExpiresAt   *time.Time           `json:"expires_at,omitempty"`
}

// Result holds the rendered exports for a draft.
type Result struct {
	DraftID uuid.UUID        `json:"draft_id"`
	Exports []PlatformExport `json:"exports"`
}

// Service renders and archives platform export payloads.
type Service struct {
	registry *domainexport.Registry
	storage  ArchiveStorage
	logger   *zap.Logger
	config   ServiceConfig
}

// NewService creates an export service. The storage may be nil, in which case
// exports are rendered but not archived.
func NewService(registry *domainexport.Registry, storage ArchiveStorage, logger *zap.Logger) *Service {
	if registry == nil {
		registry = domainexport.DefaultRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		storage:  storage,
		logger:   logger,
		config:   DefaultServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *Service) SetConfig(config ServiceConfig) {
	s.config = config
}

// Platforms lists the platform keys the service can render.
func (s *Service) Platforms() []string {
	return s.registry.Platforms()
}

// Export renders the payload for every requested platform. An unknown
// platform or a missing price fails the whole request; archiving failures do
// not, the payload is still returned without a download link.
func (s *Service) Export(ctx context.Context, req Request) (*Result, error) {
	if req.Draft == nil {
		return nil, session.ErrNotFound
	}

	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = s.registry.Platforms()
	}

	in := domainexport.Input{
		Record:    req.Draft.Record,
		Price:     req.Price,
		PhotoURLs: req.PhotoURLs,
	}

	result := &Result{
		DraftID: req.Draft.ID,
		Exports: make([]PlatformExport, 0, len(platforms)),
	}

	for _, platform := range platforms {
		payload, err := s.registry.Format(platform, in)
		if err != nil {
			return nil, err
		}

		exp := PlatformExport{Payload: payload}
		if s.storage != nil {
			s.archive(ctx, req.Draft.ID, platform, payload, &exp)
		}
		result.Exports = append(result.Exports, exp)
	}

	return result, nil
}

// archive persists one rendered payload and attaches its download link.
// Failures are logged and left off the response.
func (s *Service) archive(
	ctx context.Context,
	draftID uuid.UUID,
	platform string,
	payload domainexport.Payload,
	exp *PlatformExport,
) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("failed to encode export payload",
			zap.String("draft_id", draftID.String()),
			zap.String("platform", platform),
			zap.Error(err))
		return
	}

	storageKey := storageKeyFor(draftID, platform)
	if err := s.storage.Upload(ctx, storageKey, data, "application/json"); err != nil {
		s.logger.Warn("failed to archive export payload",
			zap.String("draft_id", draftID.String()),
			zap.String("platform", platform),
			zap.String("storage_key", storageKey),
			zap.Error(err))
		return
	}
	exp.StorageKey = storageKey

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		s.logger.Warn("failed to generate export download URL",
			zap.String("draft_id", draftID.String()),
			zap.String("storage_key", storageKey),
			zap.Error(err))
		return
	}
	exp.DownloadURL = url
	exp.ExpiresAt = &expiresAt
}

// storageKeyFor generates the archive key for one platform export.
// Format: exports/{draftID}/{platform}.json
func storageKeyFor(draftID uuid.UUID, platform string) string {
	return fmt.Sprintf("exports/%s/%s.json", draftID.String(), platform)
}
