// Package export renders a garment listing into the payload shapes expected
// by peer resale platforms. Each platform has its own formatter; the registry
// resolves formatters by platform key.
package export

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/resale/backend/internal/domain/listing"
)

var (
	// ErrUnknownPlatform indicates an export for a platform with no formatter
	ErrUnknownPlatform = errors.New("export: unknown platform")
	// ErrMissingPrice indicates an export without a listing price
	ErrMissingPrice = errors.New("export: listing price is required")
)

// Input is everything a formatter may draw from: the normalized record, the
// final listing price and the already uploaded photo URLs.
type Input struct {
	Record    listing.GarmentRecord
	Price     decimal.Decimal
	PhotoURLs []string
}

// Payload is the platform-ready export document. Fields holds the
// platform-specific key/value form; Tags carries hashtags or search tags when
// the platform uses them.
type Payload struct {
	Platform    string            `json:"platform"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Currency    string            `json:"currency"`
	Condition   string            `json:"condition"`
	PhotoURLs   []string          `json:"photo_urls"`
	Fields      map[string]string `json:"fields,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
}

// Formatter renders an export payload for one platform. Implementations are
// pure: the same input always yields the same payload and the input is never
// mutated.
type Formatter interface {
	Platform() string
	Format(in Input) (Payload, error)
}

// Registry resolves formatters by platform key.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry builds a registry over the given formatters. Later entries with
// a duplicate platform key replace earlier ones.
func NewRegistry(formatters ...Formatter) *Registry {
	m := make(map[string]Formatter, len(formatters))
	for _, f := range formatters {
		m[f.Platform()] = f
	}
	return &Registry{formatters: m}
}

// DefaultRegistry returns a registry with every built-in platform formatter.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewPoshmarkFormatter(),
		NewMercariFormatter(),
		NewDepopFormatter(),
		NewFacebookFormatter(),
	)
}

// Format renders the payload for one platform.
func (r *Registry) Format(platform string, in Input) (Payload, error) {
	f, ok := r.formatters[platform]
	if !ok {
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		return Payload{}, ErrMissingPrice
	}
	return f.Format(in)
}

// Platforms lists the registered platform keys in sorted order.
func (r *Registry) Platforms() []string {
	keys := make([]string, 0, len(r.formatters))
	for k := range r.formatters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truncate caps a string at n bytes, reused by formatters with title limits.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// copyURLs hands each payload its own slice so callers cannot alias state.
func copyURLs(urls []string) []string {
	return append([]string(nil), urls...)
}
