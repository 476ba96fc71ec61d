package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ufmtooling/shapecanvas/pkg/cache"
	"github.com/ufmtooling/shapecanvas/pkg/errors"
	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/layout"
	"github.com/ufmtooling/shapecanvas/pkg/observability"
	"github.com/ufmtooling/shapecanvas/pkg/render"
	"github.com/ufmtooling/shapecanvas/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// arrangement is the cache envelope for the arrange stage: the positioned
// scene plus the engine's report, serialized together.
type arrangement struct {
	Result layout.Result `json:"result"`
	Scene  *scene.Scene  `json:"scene"`
}

// Execute runs the complete arrange → render pipeline with caching.
// The input scene is never mutated; positions land on the returned copy.
func (r *Runner) Execute(ctx context.Context, sc *scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	sceneData, err := scene.Marshal(sc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "serialize scene")
	}
	result.SceneHash = cache.Hash(sceneData)
	result.Stats.NodeCount = len(sc.Nodes)
	result.Stats.ConnectorCount = len(sc.Connectors)

	// Stage 1: Arrange
	arrangeStart := time.Now()
	observability.Arrange().OnArrangeStart(ctx, opts.Strategy, len(sc.Nodes))
	positioned, layoutResult, arrangeHit, err := r.ArrangeWithCacheInfo(ctx, sc, opts)
	result.Stats.ArrangeTime = time.Since(arrangeStart)
	observability.Arrange().OnArrangeComplete(ctx, opts.Strategy, layoutResult.ElementsArranged, result.Stats.ArrangeTime, err)
	if err != nil {
		return nil, err
	}
	result.Scene = positioned
	result.Layout = layoutResult
	result.CacheInfo.ArrangeHit = arrangeHit

	r.Logger.Info("arranged scene",
		"strategy", opts.Strategy,
		"nodes", len(sc.Nodes),
		"connectors", len(sc.Connectors),
		"duration", result.Stats.ArrangeTime)

	// Stage 2: Render
	renderStart := time.Now()
	observability.Arrange().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, positioned, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Arrange().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ArrangeWithCacheInfo arranges a scene with caching and returns cache hit info.
// The returned scene is a positioned copy; the input is untouched.
func (r *Runner) ArrangeWithCacheInfo(ctx context.Context, sc *scene.Scene, opts Options) (*scene.Scene, layout.Result, bool, error) {
	if err := opts.ValidateForArrange(); err != nil {
		return nil, layout.Result{}, false, err
	}
	r.applyLogger(&opts)

	sceneData, err := scene.Marshal(sc)
	if err != nil {
		return nil, layout.Result{}, false, errors.Wrap(errors.ErrCodeInvalidScene, err, "serialize scene")
	}
	cacheKey := cache.LayoutKey(cache.Hash(sceneData), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached arrangement
			if err := json.Unmarshal(data, &cached); err == nil && cached.Scene != nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached.Scene, cached.Result, true, nil
			}
			// Corrupt entry, fall through to recompute.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	// Arrange
	positioned, layoutResult, err := r.arrange(sc, opts)
	if err != nil {
		return nil, layout.Result{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(arrangement{Result: layoutResult, Scene: positioned}); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return positioned, layoutResult, false, nil
}

// Arrange is a convenience wrapper that calls ArrangeWithCacheInfo and discards the cache hit info.
func (r *Runner) Arrange(ctx context.Context, sc *scene.Scene, opts Options) (*scene.Scene, layout.Result, error) {
	positioned, res, _, err := r.ArrangeWithCacheInfo(ctx, sc, opts)
	return positioned, res, err
}

// arrange runs the layout engine on a copy of the scene.
func (r *Runner) arrange(sc *scene.Scene, opts Options) (*scene.Scene, layout.Result, error) {
	positioned := sc.Clone()

	elements, err := positioned.Elements()
	if err != nil {
		return nil, layout.Result{}, err
	}

	canvas := positioned.CanvasOrDefault()
	if opts.CanvasWidth > 0 && opts.CanvasHeight > 0 {
		canvas = geometry.CanvasSize{Width: opts.CanvasWidth, Height: opts.CanvasHeight}
		positioned.Canvas = canvas
	}

	engine := layout.NewWithCanvas(canvas)
	result := engine.Arrange(elements, opts.LayoutConfig())
	if !result.Success {
		return nil, result, errors.New(errors.ErrCodeLayoutFailed, "arrange failed: %s", result.ErrorMessage)
	}

	positioned.ApplyPositions(elements)
	return positioned, result, nil
}

// RenderWithCacheInfo renders artifacts for a positioned scene with caching
// and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, positioned *scene.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := scene.Marshal(positioned)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidScene, err, "serialize scene for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := cache.ArtifactKey(layoutHash, format)
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(positioned, format)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := cache.ArtifactKey(layoutHash, format)
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, positioned *scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, positioned, opts)
	return artifacts, err
}

// renderFormat produces one output format from a positioned scene.
func renderFormat(positioned *scene.Scene, format string) ([]byte, error) {
	switch format {
	case render.FormatSVG:
		return render.RenderSVG(positioned), nil
	case render.FormatPNG:
		return render.ToPNG(render.RenderSVG(positioned), DefaultPNGScale)
	case render.FormatPDF:
		return render.ToPDF(render.RenderSVG(positioned))
	case render.FormatDOT:
		return []byte(render.ToDOT(positioned, render.DOTOptions{})), nil
	case render.FormatPreview:
		return render.DOTToSVG(render.ToDOT(positioned, render.DOTOptions{Detailed: true}))
	case render.FormatJSON:
		return scene.Marshal(positioned)
	default:
		return nil, render.ValidateFormat(format)
	}
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
