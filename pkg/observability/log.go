package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and cache events as debug log lines.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnLoadStart(_ context.Context, keyframes int) {
	h.logger.Debug("load start", "keyframes", keyframes)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, keyframes int, d time.Duration, err error) {
	h.done("load", d, err, "keyframes", keyframes)
}

func (h *LogHooks) OnSequenceStart(_ context.Context, frames int) {
	h.logger.Debug("sequence start", "frames", frames)
}

func (h *LogHooks) OnSequenceComplete(_ context.Context, frames int, degraded bool, d time.Duration, err error) {
	h.done("sequence", d, err, "frames", frames, "degraded", degraded)
}

func (h *LogHooks) OnEmitStart(_ context.Context, frames int) {
	h.logger.Debug("emit start", "frames", frames)
}

func (h *LogHooks) OnEmitComplete(_ context.Context, bytes int, d time.Duration, err error) {
	h.done("emit", d, err, "bytes", bytes)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "size", size)
}

func (h *LogHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d.Round(time.Microsecond))
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" complete", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
