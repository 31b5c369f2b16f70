// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. A [Hooks] value is handed to the
// pipeline runner, which calls it at stage boundaries (keyframe loading,
// sequencing, artifact emission) and on cache lookups.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Let the caller inject an implementation per runner
//
// Hooks are passed explicitly rather than registered globally, so two runners
// in one process (or two tests) never observe each other's events.
//
// # Usage
//
//	hooks := observability.Hooks{
//	    Pipeline: observability.NewLogHooks(logger),
//	}
//	runner := pipeline.NewRunner(c, nil, logger).WithHooks(hooks)
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the build pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, keyframes int)
	OnLoadComplete(ctx context.Context, keyframes int, duration time.Duration, err error)

	// Sequence events
	OnSequenceStart(ctx context.Context, frames int)
	OnSequenceComplete(ctx context.Context, frames int, degraded bool, duration time.Duration, err error)

	// Emit events
	OnEmitStart(ctx context.Context, frames int)
	OnEmitComplete(ctx context.Context, bytes int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnSequenceStart(context.Context, int)                      {}
func (NoopPipelineHooks) OnSequenceComplete(context.Context, int, bool, time.Duration, error) {
}
func (NoopPipelineHooks) OnEmitStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnEmitComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Hook Set
// =============================================================================

// Hooks bundles the hooks a runner calls. Nil members are no-ops.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
}

// Noop returns a hook set that does nothing.
func Noop() Hooks {
	return Hooks{Pipeline: NoopPipelineHooks{}, Cache: NoopCacheHooks{}}
}

// WithDefaults returns h with nil members replaced by no-ops.
func (h Hooks) WithDefaults() Hooks {
	if h.Pipeline == nil {
		h.Pipeline = NoopPipelineHooks{}
	}
	if h.Cache == nil {
		h.Cache = NoopCacheHooks{}
	}
	return h
}
