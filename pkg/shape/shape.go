// Package shape defines the element model consumed by the layout engine.
//
// A diagram is an unordered collection of elements of exactly two kinds:
//
//   - [Drawing]: a named box that occupies canvas area.
//   - [Relationship]: a zero-footprint directed connector between two
//     drawings, referenced by identifier rather than by pointer.
//
// The two-way discriminant is closed: every algorithm in pkg/layout filters a
// mixed collection into drawing-only and relationship-only subsets and relies
// on no third kind existing. Relationship endpoints are weak handles; an
// endpoint naming an element absent from the collection is a no-op for every
// algorithm, never a fault.
package shape

import (
	"github.com/google/uuid"

	"github.com/ufmtooling/shapecanvas/pkg/geometry"
)

// Kind discriminates the two element variants.
type Kind int

const (
	// KindDrawing is a positioned, sized box representing a diagram node.
	KindDrawing Kind = iota
	// KindRelationship is a directed connector between two drawings.
	KindRelationship
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k == KindRelationship {
		return "relationship"
	}
	return "drawing"
}

// Element is the polymorphic shape abstraction. Exactly two implementations
// exist: *Drawing and *Relationship.
type Element interface {
	// ID returns the element identifier.
	ID() string
	// Kind returns the variant discriminant.
	Kind() Kind
	// Position returns the current top-left corner.
	Position() geometry.Position
	// SetPosition replaces the top-left corner. This is the only element
	// field the layout engine ever writes.
	SetPosition(geometry.Position)
	// Size returns the element dimensions. Relationships are always 0x0.
	Size() geometry.Size
}

// Defaults for newly constructed elements.
const (
	DefaultDrawingWidth     = 100.0
	DefaultDrawingHeight    = 60.0
	DefaultShapeType        = "rectangle"
	DefaultColor            = "white"
	DefaultRelationshipType = "association"
)

// Drawing is a diagram box. The zero value is not useful; construct with
// [NewDrawing] to get defaults and an identifier.
type Drawing struct {
	id        string
	Name      string
	ShapeType string // free-form style tag, e.g. "rectangle", "ellipse"
	Color     string
	pos       geometry.Position
	dim       geometry.Size
}

// NewDrawing creates a drawing with default size, style, and a generated
// UUID identifier.
func NewDrawing(name string) *Drawing {
	return &Drawing{
		id:        uuid.NewString(),
		Name:      name,
		ShapeType: DefaultShapeType,
		Color:     DefaultColor,
		dim:       geometry.Size{Width: DefaultDrawingWidth, Height: DefaultDrawingHeight},
	}
}

// ID returns the drawing identifier.
func (d *Drawing) ID() string { return d.id }

// SetID replaces the drawing identifier.
func (d *Drawing) SetID(id string) { d.id = id }

// Kind returns KindDrawing.
func (d *Drawing) Kind() Kind { return KindDrawing }

// Position returns the top-left corner of the box.
func (d *Drawing) Position() geometry.Position { return d.pos }

// SetPosition moves the box.
func (d *Drawing) SetPosition(p geometry.Position) { d.pos = p }

// Size returns the box dimensions.
func (d *Drawing) Size() geometry.Size { return d.dim }

// SetSize replaces the box dimensions.
func (d *Drawing) SetSize(s geometry.Size) { d.dim = s }

// Bounds returns the box as a rectangle.
func (d *Drawing) Bounds() geometry.Rect {
	return geometry.Rect{Pos: d.pos, Dim: d.dim}
}

// Relationship is a directed connector from one drawing to another. It has
// zero footprint: its size is always 0x0 and the overlap oracle ignores it.
//
// FromID and ToID are identifier handles into the caller's collection.
// Either may be empty or name an element that is not present; strategies
// skip such connectors.
type Relationship struct {
	id     string
	FromID string // parent end
	ToID   string // child end
	Type   string // free-form, e.g. "association", "inheritance"
	Label  string
	pos    geometry.Position
}

// NewRelationship creates a connector between two drawing identifiers with
// the default type and a generated UUID identifier.
func NewRelationship(fromID, toID string) *Relationship {
	return &Relationship{
		id:     uuid.NewString(),
		FromID: fromID,
		ToID:   toID,
		Type:   DefaultRelationshipType,
	}
}

// ID returns the relationship identifier.
func (r *Relationship) ID() string { return r.id }

// SetID replaces the relationship identifier.
func (r *Relationship) SetID(id string) { r.id = id }

// Kind returns KindRelationship.
func (r *Relationship) Kind() Kind { return KindRelationship }

// Position returns the stored position. Connectors carry a position field
// for interface symmetry but no strategy writes to it.
func (r *Relationship) Position() geometry.Position { return r.pos }

// SetPosition stores a position on the connector.
func (r *Relationship) SetPosition(p geometry.Position) { r.pos = p }

// Size returns 0x0; relationships occupy no canvas area.
func (r *Relationship) Size() geometry.Size { return geometry.Size{} }

var (
	_ Element = (*Drawing)(nil)
	_ Element = (*Relationship)(nil)
)

// Drawings filters elements down to the drawing subset, preserving input
// order. Order matters: the circular strategy and the force-directed seed
// assign angles by index.
func Drawings(elements []Element) []*Drawing {
	var out []*Drawing
	for _, el := range elements {
		if d, ok := el.(*Drawing); ok && d != nil {
			out = append(out, d)
		}
	}
	return out
}

// Relationships filters elements down to the relationship subset, preserving
// input order. Order matters for hierarchical leveling, which is a single
// pass over the relationship list.
func Relationships(elements []Element) []*Relationship {
	var out []*Relationship
	for _, el := range elements {
		if r, ok := el.(*Relationship); ok && r != nil {
			out = append(out, r)
		}
	}
	return out
}
