// Package cache stores rendered artifacts so repeated renders of the same
// triangle skip the pipeline.
//
// Two implementations are provided: [FileCache] for the CLI and server, which
// keeps JSON entries with optional expiry under a directory, and [NullCache],
// which never stores anything. Keys come from a [Keyer], so the same inputs
// always map to the same entry.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry TTL.
//
// Get reports a miss with ok=false and a nil error. A ttl of zero means the
// entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
