// Package scene defines the serialization format for diagram descriptions.
//
// A scene is the document form of the element collection the layout engine
// works on: a list of boxes (nodes) and directed connectors, plus the canvas
// they target. Scenes are read from YAML or JSON and written as JSON, and are
// designed for round-trip fidelity: load → arrange → save → re-load preserves
// everything except the freshly computed positions.
//
// The scene format is the system's boundary with upstream producers (diagram
// description generators) and downstream consumers (renderers); the engine
// itself never sees a scene, only the converted elements.
package scene

import (
	"github.com/ufmtooling/shapecanvas/pkg/errors"
	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/shape"
)

// Scene is the canonical serialization format for a diagram.
type Scene struct {
	Name       string              `json:"name,omitempty" bson:"name,omitempty" yaml:"name,omitempty"`
	Canvas     geometry.CanvasSize `json:"canvas,omitempty" bson:"canvas,omitempty" yaml:"canvas,omitempty"`
	Nodes      []Node              `json:"nodes" bson:"nodes" yaml:"nodes"`
	Connectors []Connector         `json:"connectors,omitempty" bson:"connectors,omitempty" yaml:"connectors,omitempty"`
}

// Node is a serialized drawing element. A zero width or height falls back to
// the element default for that dimension (100x60); empty shape and color
// likewise default.
type Node struct {
	ID     string  `json:"id" bson:"id" yaml:"id"`
	Name   string  `json:"name,omitempty" bson:"name,omitempty" yaml:"name,omitempty"`
	Shape  string  `json:"shape,omitempty" bson:"shape,omitempty" yaml:"shape,omitempty"`
	Color  string  `json:"color,omitempty" bson:"color,omitempty" yaml:"color,omitempty"`
	Width  float64 `json:"width,omitempty" bson:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" bson:"height,omitempty" yaml:"height,omitempty"`
	X      float64 `json:"x" bson:"x" yaml:"x"`
	Y      float64 `json:"y" bson:"y" yaml:"y"`
}

// Connector is a serialized relationship element. From and To are node
// identifiers; they may reference nodes absent from the scene, which every
// layout strategy treats as a no-op.
type Connector struct {
	ID    string `json:"id,omitempty" bson:"id,omitempty" yaml:"id,omitempty"`
	From  string `json:"from" bson:"from" yaml:"from"`
	To    string `json:"to" bson:"to" yaml:"to"`
	Type  string `json:"type,omitempty" bson:"type,omitempty" yaml:"type,omitempty"`
	Label string `json:"label,omitempty" bson:"label,omitempty" yaml:"label,omitempty"`
}

// Validate checks the scene for structural problems: empty or duplicate node
// identifiers and unsafe color tags. Dangling connector endpoints are legal.
func (s *Scene) Validate() error {
	seen := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if err := errors.ValidateElementID(n.ID); err != nil {
			return err
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate node id: %s", n.ID)
		}
		seen[n.ID] = true
		if err := errors.ValidateColor(n.Color); err != nil {
			return err
		}
	}
	if err := errors.ValidateCanvas(s.Canvas.Width, s.Canvas.Height); err != nil {
		return err
	}
	return nil
}

// CanvasOrDefault returns the scene's canvas, falling back to 1920x1080 when
// the document omits it.
func (s *Scene) CanvasOrDefault() geometry.CanvasSize {
	if s.Canvas.Width == 0 && s.Canvas.Height == 0 {
		return geometry.DefaultCanvas()
	}
	return s.Canvas
}

// Elements converts the scene to the element collection the layout engine
// consumes, in document order. The scene is validated first.
func (s *Scene) Elements() ([]shape.Element, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	elements := make([]shape.Element, 0, len(s.Nodes)+len(s.Connectors))
	for _, n := range s.Nodes {
		d := shape.NewDrawing(n.Name)
		d.SetID(n.ID)
		if n.Shape != "" {
			d.ShapeType = n.Shape
		}
		if n.Color != "" {
			d.Color = n.Color
		}
		size := d.Size()
		if n.Width != 0 {
			size.Width = n.Width
		}
		if n.Height != 0 {
			size.Height = n.Height
		}
		d.SetSize(size)
		d.SetPosition(geometry.Position{X: n.X, Y: n.Y})
		elements = append(elements, d)
	}
	for _, c := range s.Connectors {
		r := shape.NewRelationship(c.From, c.To)
		if c.ID != "" {
			r.SetID(c.ID)
		}
		if c.Type != "" {
			r.Type = c.Type
		}
		r.Label = c.Label
		elements = append(elements, r)
	}
	return elements, nil
}

// Clone returns a deep copy of the scene. Node and connector values are
// copied, so position writes on the clone never touch the original.
func (s *Scene) Clone() *Scene {
	out := &Scene{Name: s.Name, Canvas: s.Canvas}
	if s.Nodes != nil {
		out.Nodes = make([]Node, len(s.Nodes))
		copy(out.Nodes, s.Nodes)
	}
	if s.Connectors != nil {
		out.Connectors = make([]Connector, len(s.Connectors))
		copy(out.Connectors, s.Connectors)
	}
	return out
}

// ApplyPositions writes the positions of the given drawings back into the
// scene's nodes, matched by identifier. Drawings without a matching node are
// ignored.
func (s *Scene) ApplyPositions(elements []shape.Element) {
	byID := make(map[string]int, len(s.Nodes))
	for i, n := range s.Nodes {
		byID[n.ID] = i
	}
	for _, d := range shape.Drawings(elements) {
		if i, ok := byID[d.ID()]; ok {
			p := d.Position()
			s.Nodes[i].X = p.X
			s.Nodes[i].Y = p.Y
		}
	}
}
