package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgtween/pkg/cache"
	"github.com/matzehuels/svgtween/pkg/config"
	"github.com/matzehuels/svgtween/pkg/errors"
	"github.com/matzehuels/svgtween/pkg/io"
	"github.com/matzehuels/svgtween/pkg/lottie"
	"github.com/matzehuels/svgtween/pkg/observability"
	"github.com/matzehuels/svgtween/pkg/svg"
	"github.com/matzehuels/svgtween/pkg/timeline"
	"github.com/matzehuels/svgtween/pkg/tween"
)

const cacheKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, hooks and logger. It doesn't
// store pipeline results.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Hooks  observability.Hooks
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Hooks:  observability.Noop(),
	}
}

// WithHooks sets the runner's hooks and returns the runner.
func (r *Runner) WithHooks(h observability.Hooks) *Runner {
	r.Hooks = h.WithDefaults()
	return r
}

// Execute runs the complete load → sequence → emit pipeline with caching.
// cfg is completed with defaults and validated first.
func (r *Runner) Execute(ctx context.Context, cfg *config.Config) (*Result, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rules, _ := cfg.TweenRules()
	easing, _ := cfg.EasingFunc()
	hooks := r.Hooks.WithDefaults()

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	hooks.Pipeline.OnLoadStart(ctx, len(cfg.Keyframes))
	keyframes, inputHash, err := r.Load(cfg.KeyframePaths())
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.Pipeline.OnLoadComplete(ctx, len(cfg.Keyframes), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.InputHash = inputHash

	w, h := r.canvas(cfg, keyframes[0])
	result.Stats.Keyframes = len(keyframes)
	result.Stats.FramesPerTransition = cfg.FramesPerTransition
	result.Stats.FPS = cfg.FPS
	result.Stats.Width, result.Stats.Height = w, h

	r.Logger.Info("loaded keyframes",
		"count", len(keyframes),
		"canvas", canvasString(w, h),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cacheKey := r.Keyer.ArtifactKey(inputHash, cache.ArtifactKeyOpts{
		Name:                cfg.Name,
		FramesPerTransition: cfg.FramesPerTransition,
		FPS:                 cfg.FPS,
		Width:               w,
		Height:              h,
		Easing:              cfg.Easing,
		RulesHash:           rulesHash(rules),
	})

	// Stage 2: Sequence
	seqStart := time.Now()
	total := timeline.Count(len(keyframes), cfg.FramesPerTransition)
	hooks.Pipeline.OnSequenceStart(ctx, total)
	frames, env, hit := r.cached(ctx, cacheKey, hooks)
	if !hit {
		frames, err = timeline.Build(ctx, keyframes, timeline.Options{
			FramesPerTransition: cfg.FramesPerTransition,
			Rules:               rules,
			Easing:              easing,
		})
	}
	result.Stats.SequenceTime = time.Since(seqStart)
	result.Report = timeline.Summarize(frames)
	hooks.Pipeline.OnSequenceComplete(ctx, len(frames), result.Report.Degraded(), result.Stats.SequenceTime, err)
	if err != nil {
		return nil, err
	}
	result.Frames = frames
	result.CacheHit = hit
	result.Stats.Frames = len(frames)

	for _, f := range frames {
		if f.Keyframe {
			continue
		}
		r.Logger.Debug("interpolated frame",
			"frame", f.Index,
			"transition", f.Transition,
			"t", svg.FormatNumber(f.T),
			"snapped", f.Report.Snapped,
			"frozen", f.Report.Frozen)
	}
	r.Logger.Info("sequenced frames",
		"frames", len(frames),
		"cached", hit,
		"duration", result.Stats.SequenceTime)
	if result.Report.Degraded() {
		r.Logger.Warn("some elements did not interpolate",
			"snapped", result.Report.Snapped,
			"frozen", result.Report.Frozen,
			"excluded", result.Report.Excluded)
	}

	// Stage 3: Emit
	emitStart := time.Now()
	hooks.Pipeline.OnEmitStart(ctx, len(frames))
	if env == nil {
		env = lottie.New(cfg.Name, len(frames), cfg.FPS, w, h)
	}
	result.Envelope = env
	result.Lottie, err = env.Marshal()
	result.Stats.EmitTime = time.Since(emitStart)
	hooks.Pipeline.OnEmitComplete(ctx, len(result.Lottie), result.Stats.EmitTime, err)
	if err != nil {
		return nil, err
	}

	if !hit {
		var buf bytes.Buffer
		if err := io.WriteBundle(frames, env, &buf); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLArtifact); err == nil {
				hooks.Cache.OnCacheSet(ctx, cacheKeyType, buf.Len())
			} else {
				r.Logger.Warn("cache write failed", "err", err)
			}
		}
	}

	return result, nil
}

// Load reads and parses the keyframes at paths. It also returns the hash of
// their combined bytes. Any missing, unreadable or malformed keyframe aborts
// the load.
func (r *Runner) Load(paths []string) ([]*svg.Document, string, error) {
	docs := make([]*svg.Document, 0, len(paths))
	raw := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, "", errors.WrapFS(err, "read keyframe %s", p)
		}
		doc, err := svg.Parse(p, data)
		if err != nil {
			return nil, "", err
		}
		r.Logger.Debug("loaded keyframe", "path", p, "ids", len(doc.IDs()))
		docs = append(docs, doc)
		raw = append(raw, data)
	}
	return docs, cache.HashAll(raw...), nil
}

// cached looks up a previous run. Unreadable entries count as misses.
func (r *Runner) cached(ctx context.Context, key string, hooks observability.Hooks) ([]timeline.Frame, *lottie.Envelope, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		hooks.Cache.OnCacheMiss(ctx, cacheKeyType)
		return nil, nil, false
	}
	frames, env, err := io.ReadBundle(bytes.NewReader(data))
	if err != nil {
		r.Logger.Debug("discarding stale cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		hooks.Cache.OnCacheMiss(ctx, cacheKeyType)
		return nil, nil, false
	}
	hooks.Cache.OnCacheHit(ctx, cacheKeyType)
	return frames, env, true
}

// canvas returns the configured canvas size, falling back to the first
// keyframe and then to DefaultCanvasSize.
func (r *Runner) canvas(cfg *config.Config, first *svg.Document) (float64, float64) {
	if cfg.Width > 0 && cfg.Height > 0 {
		return cfg.Width, cfg.Height
	}
	if w, h, ok := first.Size(); ok {
		return w, h
	}
	r.Logger.Warn("canvas size unknown, using default",
		"keyframe", first.Name,
		"size", DefaultCanvasSize)
	return DefaultCanvasSize, DefaultCanvasSize
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func rulesHash(rules []tween.Rule) string {
	data, _ := json.Marshal(rules)
	return cache.Hash(data)
}

func canvasString(w, h float64) string {
	return svg.FormatNumber(w) + "x" + svg.FormatNumber(h)
}
