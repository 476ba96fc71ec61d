package layout

import "github.com/ufmtooling/shapecanvas/pkg/errors"

// Strategy selects one of the four placement algorithms.
type Strategy int

const (
	// StrategyGrid tiles drawings into a uniform grid sized to the largest box.
	StrategyGrid Strategy = iota
	// StrategyHierarchical layers drawings by graph depth inferred from connectors.
	StrategyHierarchical
	// StrategyForce relaxes positions with pairwise repulsion and spring edges.
	StrategyForce
	// StrategyCircular places drawings evenly on a circle around the canvas center.
	StrategyCircular
)

// Strategy names as accepted by [ParseStrategy] and emitted by String.
const (
	NameGrid         = "grid"
	NameHierarchical = "hierarchical"
	NameForce        = "force"
	NameCircular     = "circular"
)

// String returns the lowercase strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyHierarchical:
		return NameHierarchical
	case StrategyForce:
		return NameForce
	case StrategyCircular:
		return NameCircular
	default:
		return NameGrid
	}
}

// ParseStrategy maps a strategy name to its Strategy value.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case NameGrid:
		return StrategyGrid, nil
	case NameHierarchical:
		return StrategyHierarchical, nil
	case NameForce:
		return StrategyForce, nil
	case NameCircular:
		return StrategyCircular, nil
	default:
		return StrategyGrid, errors.New(errors.ErrCodeInvalidStrategy,
			"unknown strategy %q (must be one of: grid, hierarchical, force, circular)", name)
	}
}

// Config tunes a single arrange call. It is a pure value: the engine stores
// the last config used and exposes it for inspection, but every strategy
// reads only the copy supplied to the call.
type Config struct {
	Strategy     Strategy
	Padding      float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	// RespectConnections is accepted and carried but not branched on by any
	// strategy today. Reserved: wiring it up is a behavior change, not a fix.
	RespectConnections bool
}

// Default configuration values.
const (
	DefaultPadding = 20.0
	DefaultMargin  = 50.0
)

// DefaultConfig returns the grid strategy with 20 padding and 50 margins.
func DefaultConfig() Config {
	return Config{
		Strategy:           StrategyGrid,
		Padding:            DefaultPadding,
		MarginTop:          DefaultMargin,
		MarginBottom:       DefaultMargin,
		MarginLeft:         DefaultMargin,
		MarginRight:        DefaultMargin,
		RespectConnections: true,
	}
}

// Result summarizes a single arrange call. It is produced fresh per call and
// never retained by the engine.
type Result struct {
	Success          bool    `json:"success" bson:"success"`
	ErrorMessage     string  `json:"error_message,omitempty" bson:"error_message,omitempty"`
	ElementsArranged int     `json:"elements_arranged" bson:"elements_arranged"`
	TotalArea        float64 `json:"total_area" bson:"total_area"`
}

// emptyResult is the shared trivial success for an empty drawing subset.
func emptyResult() Result {
	return Result{Success: true}
}
