// Package cache stores encoded build bundles between runs.
//
// A build is keyed by the hash of its keyframe bytes plus every option that
// changes its output (frames per transition, fps, easing, rules, canvas). When
// the key hits, the pipeline decodes the stored bundle instead of
// interpolating again.
//
// Three implementations are provided: [FileCache] for the CLI, storing
// entries below the XDG cache directory, [RedisCache] for build machines
// sharing one cache, and [NullCache] when caching is disabled.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long an encoded build bundle stays valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every build they hold.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a build bundle for the given input hash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists the build options that change a bundle's content.
type ArtifactKeyOpts struct {
	Name                string  `json:"name"`
	FramesPerTransition int     `json:"frames_per_transition"`
	FPS                 float64 `json:"fps"`
	Width               float64 `json:"width"`
	Height              float64 `json:"height"`
	Easing              string  `json:"easing"`
	// RulesHash is the hash of the encoded rules table.
	RulesHash string `json:"rules_hash"`
}

// DefaultKeyer hashes the input hash and options into a prefixed key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
