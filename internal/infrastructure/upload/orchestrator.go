// Package upload coordinates photo preparation and marketplace upload for a
// listing's image batch.
package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/resale/backend/internal/domain/listing"
	"github.com/resale/backend/internal/infrastructure/retry"
)

// ErrNoImages indicates an upload batch with no image paths
var ErrNoImages = errors.New("upload: no images in batch")

// DefaultConcurrency bounds how many photos are in flight at once. The
// marketplace caps listings at twelve photos, so the whole batch can run in
// parallel.
const DefaultConcurrency = listing.MaxPhotos

// defaultRetryPolicy tries each photo up to three times with a linearly
// growing wait between tries.
var defaultRetryPolicy = retry.LinearPolicy(3, time.Second)

// Preparer compresses a staged photo and returns the path of the prepared
// file. The prepared file belongs to the orchestrator and is removed after
// the upload attempt finishes.
type Preparer interface {
	CompressFile(srcPath string) (string, error)
}

// PictureUploader pushes one prepared photo to the marketplace host.
type PictureUploader interface {
	UploadPicture(ctx context.Context, name string, image []byte) (string, error)
}

// Orchestrator runs a photo batch through prepare and upload with bounded
// concurrency. Failed photos are dropped; the returned URLs keep the original
// photo order of the successes.
type Orchestrator struct {
	preparer    Preparer
	uploader    PictureUploader
	policy      retry.Policy
	concurrency int
	logger      *zap.Logger
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithRetryPolicy overrides the per-photo retry policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithConcurrency overrides the parallel upload bound.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// NewOrchestrator creates an upload orchestrator.
func NewOrchestrator(preparer Preparer, uploader PictureUploader, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		preparer:    preparer,
		uploader:    uploader,
		policy:      defaultRetryPolicy,
		concurrency: DefaultConcurrency,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// UploadAll prepares and uploads every photo in the batch. Photos past the
// listing cap are ignored. The result holds the hosted URLs of the photos
// that made it, in batch order; photos that failed after all retries are
// logged and skipped rather than failing the batch.
func (o *Orchestrator) UploadAll(ctx context.Context, imagePaths []string) ([]string, error) {
	if len(imagePaths) == 0 {
		return nil, ErrNoImages
	}
	if len(imagePaths) > listing.MaxPhotos {
		imagePaths = imagePaths[:listing.MaxPhotos]
	}

	urls := make([]string, len(imagePaths))
	sem := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup

	for i, path := range imagePaths {
		wg.Add(1)
		go func(idx int, srcPath string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			url, err := o.uploadOne(ctx, idx, srcPath)
			if err != nil {
				o.logger.Warn("photo upload failed, skipping",
					zap.Int("index", idx),
					zap.String("path", filepath.Base(srcPath)),
					zap.Error(err))
				return
			}
			urls[idx] = url
		}(i, path)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Compact to the successes, preserving batch order.
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			out = append(out, u)
		}
	}
	return out, nil
}

// uploadOne prepares a single photo and uploads it with retries. The
// prepared temp file is removed on every path out.
func (o *Orchestrator) uploadOne(ctx context.Context, idx int, srcPath string) (string, error) {
	prepared, err := o.preparer.CompressFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("prepare: %w", err)
	}
	defer os.Remove(prepared)

	data, err := os.ReadFile(prepared)
	if err != nil {
		return "", fmt.Errorf("read prepared: %w", err)
	}

	name := fmt.Sprintf("photo-%d.jpg", idx+1)
	var url string
	err = o.policy.Do(ctx, func(ctx context.Context) error {
		u, uploadErr := o.uploader.UploadPicture(ctx, name, data)
		if uploadErr != nil {
			return uploadErr
		}
		url = u
		return nil
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
