// Package cache stores rendered export artifacts keyed by document content.
//
// # Overview
//
// Rendering a template is cheap for HTML but not for the Graphviz outline,
// and the HTTP API re-exports on every request. A [Cache] keeps artifacts
// under keys derived from a hash of the document, so an unchanged document
// is never rendered twice.
//
// Three implementations are provided:
//
//   - [FileCache]: one JSON entry per key under a directory (CLI default)
//   - [RedisCache]: shared cache for several API instances
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] builds keys. [DefaultKeyer] produces
//
//	export:<format>:<sha256 of the document JSON>
//
// and [ScopedKeyer] prefixes another keyer's keys to isolate namespaces.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// An expired or unreadable entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the cache's resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ExportKey returns the key for the artifact of format rendered from
	// the document whose hash is docHash.
	ExportKey(docHash, format string) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ExportKey implements Keyer.
func (DefaultKeyer) ExportKey(docHash, format string) string {
	return "export:" + format + ":" + docHash
}

// Hash returns the hex SHA-256 of data. Export keys use it on the
// document's canonical JSON.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache stores nothing; every Get misses. It stands in when caching is
// disabled in the config or by --no-cache.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
