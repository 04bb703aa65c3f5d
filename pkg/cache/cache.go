// Package cache provides content-addressed caching for computed layouts
// and rendered artifacts.
//
// Layouts are deterministic, so caching is keyed by content: the SHA-256
// hash of the canonical tree serialization identifies a layout, and the
// layout hash plus render options identify an artifact. Backends share the
// byte-level [Cache] interface:
//
//   - [FileCache]: on-disk cache for CLI usage
//   - [RedisCache]: shared cache for the HTTP service
//   - [NullCache]: no-op cache for tests and --no-cache
//
// Key construction is separated into the [Keyer] interface so that
// deployments can namespace keys (see [ScopedKeyer]) without touching the
// storage backends.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per entry type. Entries are content-addressed so they never
// go stale; the TTLs only bound disk and Redis growth.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-level key-value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss;
	// misses are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration; a negative
	// ttl expires the entry immediately.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backend resources.
	Close() error
}

// ArtifactKeyOpts captures the render options that affect artifact bytes.
// Two renders with equal layout hash and equal opts produce equal output.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs yield equal keys across processes.
type Keyer interface {
	// LayoutKey generates a key for a computed layout, from the SHA-256
	// hash of the canonical tree serialization.
	LayoutKey(treeHash string) string

	// ArtifactKey generates a key for a rendered artifact, from the
	// layout hash and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a type prefix plus the SHA-256
// hash of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(treeHash string) string {
	return hashKey("layout", treeHash)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
