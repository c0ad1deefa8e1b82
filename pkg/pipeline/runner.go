package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/trisolve/pkg/cache"
	"github.com/matzehuels/trisolve/pkg/observability"
	"github.com/matzehuels/trisolve/pkg/render/scene"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

const artifactKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
// The CLI, TUI and server share this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
	}
}

// Execute runs the complete solve → layout → render pipeline with caching.
// An invalid triangle is not an error: the result reports Valid=false and
// the artifacts show an empty canvas.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	ctx, span := observability.Tracer().Start(ctx, "pipeline.execute",
		trace.WithAttributes(
			attribute.String("mode", opts.Mode.String()),
			attribute.StringSlice("formats", opts.Formats),
		))
	defer span.End()

	result := &Result{
		InputKey: r.Keyer.InputKey(opts.Mode, opts.Inputs),
	}

	// Stage 1: Solve
	solveStart := time.Now()
	result.Solve = r.Solve(ctx, opts.Mode, opts.Inputs)
	result.Stats.SolveTime = time.Since(solveStart)
	span.SetAttributes(attribute.Bool("valid", result.Solve.Valid))

	if result.Solve.Valid {
		r.Logger.Info("solved triangle",
			"mode", opts.Mode,
			"steps", len(result.Solve.Steps),
			"duration", result.Stats.SolveTime)
	} else {
		r.Logger.Warn("no triangle",
			"mode", opts.Mode,
			"reason", result.Solve.Error)
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	s, err := Layout(result.Solve, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = s
	result.Stats.LayoutTime = time.Since(layoutStart)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.InputKey, result.Solve, s, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Solve runs the solver with hooks and a trace span around it.
func (r *Runner) Solve(ctx context.Context, mode triangle.Mode, in triangle.Measures) triangle.Result {
	_, span := observability.Tracer().Start(ctx, "pipeline.solve",
		trace.WithAttributes(attribute.String("mode", mode.String())))
	defer span.End()

	hooks := observability.Pipeline()
	hooks.OnSolveStart(ctx, mode.String())
	start := time.Now()
	res := triangle.Solve(mode, in)
	hooks.OnSolveComplete(ctx, mode.String(), res.Valid, time.Since(start))

	if !res.Valid {
		span.SetStatus(codes.Error, res.Error)
	}
	return res
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// Artifacts are served from cache only when every requested format is present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, inputKey string, res triangle.Result, s scene.Scene, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	ctx, span := observability.Tracer().Start(ctx, "pipeline.render",
		trace.WithAttributes(attribute.StringSlice("formats", opts.Formats)))
	defer span.End()

	cacheHooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(inputKey, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				cacheHooks.OnCacheMiss(ctx, artifactKeyType)
				break
			}
			cacheHooks.OnCacheHit(ctx, artifactKeyType)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, res, s, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(inputKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Debug("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, artifactKeyType, len(data))
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
