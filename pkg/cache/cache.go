// Package cache stores computed bounds, schedules and rendered artifacts.
//
// The CLI uses a [FileCache] under the XDG cache directory, the HTTP server
// a [RedisCache] shared between instances, and tests a [NullCache]. Keys are
// built by a [Keyer] from content hashes of the instance and the options that
// affect the result, so two requests for the same instance and settings hit
// the same entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection or handles.
	Close() error
}

// Entry lifetimes. Bounds and schedules depend only on the instance content
// and options, so they live long; artifacts are cheap to regenerate.
const (
	TTLBounds   = 30 * 24 * time.Hour
	TTLSchedule = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
