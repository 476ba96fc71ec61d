// Package pipeline provides the core arrange pipeline for Shapecanvas.
//
// This package implements the complete load → arrange → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two computing stages over a loaded scene:
//
//  1. Arrange: Compute box positions with the selected layout strategy
//  2. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON,
//     and a Graphviz node-link preview)
//
// Each stage can be run independently or as part of the complete pipeline.
// Arranging is deterministic, so both stages cache their results keyed by a
// content hash of their inputs.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Strategy: "hierarchical",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, sc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ufmtooling/shapecanvas/pkg/cache"
	"github.com/ufmtooling/shapecanvas/pkg/errors"
	"github.com/ufmtooling/shapecanvas/pkg/layout"
	"github.com/ufmtooling/shapecanvas/pkg/render"
	"github.com/ufmtooling/shapecanvas/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStrategy is the layout strategy used when none is given.
	DefaultStrategy = "grid"

	// DefaultFormat is the output format used when none is given.
	DefaultFormat = render.FormatSVG

	// DefaultPNGScale is the raster scale factor for PNG conversion.
	// 2.0 produces a 2x resolution image suitable for high-DPI displays.
	DefaultPNGScale = 2.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the arrange pipeline.
// This struct supports JSON serialization for API requests.
//
// Zero values mean "use the default": an empty strategy falls back to grid,
// zero padding and margins fall back to the engine defaults, and a zero
// canvas defers to the scene's own canvas.
type Options struct {
	// Arrange options
	Strategy     string  `json:"strategy,omitempty"`
	CanvasWidth  float64 `json:"canvas_width,omitempty"`
	CanvasHeight float64 `json:"canvas_height,omitempty"`
	Padding      float64 `json:"padding,omitempty"`
	MarginTop    float64 `json:"margin_top,omitempty"`
	MarginBottom float64 `json:"margin_bottom,omitempty"`
	MarginLeft   float64 `json:"margin_left,omitempty"`
	MarginRight  float64 `json:"margin_right,omitempty"`

	// SkipConnections disables connectivity-aware placement hints.
	// The zero value keeps connections respected, matching the engine default.
	SkipConnections bool `json:"skip_connections,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the layout cache and recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the positioned copy of the input scene.
	Scene *scene.Scene

	// SceneHash is the content hash of the input scene.
	SceneHash string

	// Layout is the engine's arrangement report.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	ConnectorCount int
	ArrangeTime    time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ArrangeHit bool // Whether the arranged layout came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForArrange(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := render.ValidateFormats(o.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid output format")
	}
	o.validated = true
	return nil
}

// ValidateForArrange checks required fields for arranging and applies defaults.
func (o *Options) ValidateForArrange() error {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if _, err := layout.ParseStrategy(o.Strategy); err != nil {
		return err
	}
	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding must not be negative: %g", o.Padding)
	}
	if o.CanvasWidth < 0 || o.CanvasHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas dimensions must not be negative")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := render.ValidateFormats(o.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid output format")
	}
	return nil
}

// RespectConnections reports whether connectivity-aware placement is enabled.
func (o *Options) RespectConnections() bool {
	return !o.SkipConnections
}

// LayoutConfig converts the options to an engine configuration.
// Zero padding and margins fall back to the engine defaults.
func (o *Options) LayoutConfig() layout.Config {
	strategy, err := layout.ParseStrategy(o.Strategy)
	if err != nil {
		strategy = layout.StrategyGrid
	}

	cfg := layout.DefaultConfig()
	cfg.Strategy = strategy
	cfg.RespectConnections = o.RespectConnections()
	if o.Padding != 0 {
		cfg.Padding = o.Padding
	}
	if o.MarginTop != 0 {
		cfg.MarginTop = o.MarginTop
	}
	if o.MarginBottom != 0 {
		cfg.MarginBottom = o.MarginBottom
	}
	if o.MarginLeft != 0 {
		cfg.MarginLeft = o.MarginLeft
	}
	if o.MarginRight != 0 {
		cfg.MarginRight = o.MarginRight
	}
	return cfg
}

// LayoutKeyOpts returns cache key options for the arrange stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.LayoutConfig()
	return cache.LayoutKeyOpts{
		Strategy:           cfg.Strategy.String(),
		CanvasWidth:        o.CanvasWidth,
		CanvasHeight:       o.CanvasHeight,
		Padding:            cfg.Padding,
		MarginTop:          cfg.MarginTop,
		MarginBottom:       cfg.MarginBottom,
		MarginLeft:         cfg.MarginLeft,
		MarginRight:        cfg.MarginRight,
		RespectConnections: cfg.RespectConnections,
	}
}
