// Package layout computes 2D coordinates for diagram elements.
//
// The [Engine] takes an unordered collection of [shape.Element] values and
// positions every drawing in it under one of four strategies: grid,
// hierarchical, force-directed, or circular. Positions are written back to
// the drawings in place; the engine never creates or destroys elements and
// never touches any field other than position.
//
// # Concurrency
//
// An Engine is single-threaded by contract. It holds two pieces of mutable
// state (current canvas size and last-used config) with no locking, and it
// mutates the caller-owned element collection during Arrange. Use one engine
// per logical thread of control and do not mutate a collection while a call
// is in flight.
//
// # Determinism
//
// No strategy uses randomness. For a fixed input order, config, and canvas
// size the computed coordinates are identical across runs, including the
// force-directed seed (a deterministic circle, not a random scatter).
package layout

import (
	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/shape"
)

// Engine positions drawing elements on a canvas.
type Engine struct {
	canvas geometry.CanvasSize
	config Config
}

// New creates an engine targeting the default 1920x1080 canvas with the
// default grid configuration.
func New() *Engine {
	return NewWithCanvas(geometry.DefaultCanvas())
}

// NewWithCanvas creates an engine targeting the given canvas.
func NewWithCanvas(canvas geometry.CanvasSize) *Engine {
	return &Engine{canvas: canvas, config: DefaultConfig()}
}

// Arrange positions the drawing elements in place under cfg and stores cfg
// as the engine's current configuration. An unrecognized strategy value
// falls back to grid. Arrange never panics on edge inputs: an empty drawing
// subset, missing relationship endpoints, and degenerate graphs all take
// safe fallbacks, and every failure mode is expressed through the Result.
func (e *Engine) Arrange(elements []shape.Element, cfg Config) Result {
	e.config = cfg

	switch cfg.Strategy {
	case StrategyHierarchical:
		return e.arrangeHierarchical(elements)
	case StrategyForce:
		return e.arrangeForce(elements)
	case StrategyCircular:
		return e.arrangeCircular(elements)
	default:
		return e.arrangeGrid(elements)
	}
}

// ArrangeCurrent positions elements under the engine's current
// configuration, the last config passed to Arrange or SetConfig (initially
// [DefaultConfig]). It is a thin wrapper over Arrange.
func (e *Engine) ArrangeCurrent(elements []shape.Element) Result {
	return e.Arrange(elements, e.config)
}

// SetCanvasSize replaces the target canvas. No validation is performed.
func (e *Engine) SetCanvasSize(size geometry.CanvasSize) {
	e.canvas = size
}

// CanvasSize returns the current target canvas.
func (e *Engine) CanvasSize() geometry.CanvasSize {
	return e.canvas
}

// SetConfig replaces the current configuration without arranging anything.
func (e *Engine) SetConfig(cfg Config) {
	e.config = cfg
}

// Config returns the current configuration.
func (e *Engine) Config() Config {
	return e.config
}

// SetStrategy replaces only the strategy of the current configuration.
func (e *Engine) SetStrategy(s Strategy) {
	e.config.Strategy = s
}

// Strategy returns the current strategy.
func (e *Engine) Strategy() Strategy {
	return e.config.Strategy
}
