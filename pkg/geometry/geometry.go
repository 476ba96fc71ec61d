// Package geometry provides the primitive value types used by the layout
// engine: positions, sizes, and canvas bounds. All coordinates are in user
// units (typically pixels in SVG) with the origin at the top-left corner
// and the y axis growing downward.
package geometry

// Position is a 2D point.
type Position struct {
	X float64 `json:"x" bson:"x" yaml:"x"`
	Y float64 `json:"y" bson:"y" yaml:"y"`
}

// Add returns the position translated by dx, dy.
func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width/height pair. Negative values are not rejected; callers
// that supply them get geometrically meaningless layouts back.
type Size struct {
	Width  float64 `json:"width" bson:"width" yaml:"width"`
	Height float64 `json:"height" bson:"height" yaml:"height"`
}

// CanvasSize defines the coordinate bounds a layout strategy targets.
type CanvasSize struct {
	Width  float64 `json:"width" bson:"width" yaml:"width"`
	Height float64 `json:"height" bson:"height" yaml:"height"`
}

// Default canvas dimensions.
const (
	DefaultCanvasWidth  = 1920.0
	DefaultCanvasHeight = 1080.0
)

// DefaultCanvas returns the default 1920x1080 canvas.
func DefaultCanvas() CanvasSize {
	return CanvasSize{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
}

// Rect is an axis-aligned rectangle identified by its top-left corner and size.
type Rect struct {
	Pos Position
	Dim Size
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Position {
	return Position{X: r.Pos.X + r.Dim.Width/2, Y: r.Pos.Y + r.Dim.Height/2}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Pos.X + r.Dim.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Pos.Y + r.Dim.Height }
