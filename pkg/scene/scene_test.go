package scene

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ufmtooling/shapecanvas/pkg/errors"
	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/shape"
)

func sampleScene() *Scene {
	return &Scene{
		Name:   "classes",
		Canvas: geometry.CanvasSize{Width: 1600, Height: 900},
		Nodes: []Node{
			{ID: "user", Name: "User", Width: 120, Height: 80},
			{ID: "order", Name: "Order"},
			{ID: "item", Name: "Item", Shape: "ellipse", Color: "#eef"},
		},
		Connectors: []Connector{
			{From: "user", To: "order", Type: "composition"},
			{From: "order", To: "item", Label: "contains"},
		},
	}
}

func TestElementsConversion(t *testing.T) {
	s := sampleScene()

	elements, err := s.Elements()
	if err != nil {
		t.Fatalf("Elements() error = %v", err)
	}

	drawings := shape.Drawings(elements)
	if len(drawings) != 3 {
		t.Fatalf("len(drawings) = %d, want 3", len(drawings))
	}
	if drawings[0].ID() != "user" || drawings[0].Size().Width != 120 {
		t.Errorf("node 0 = %q %vx%v, want user 120x80",
			drawings[0].ID(), drawings[0].Size().Width, drawings[0].Size().Height)
	}
	// Omitted size falls back to element defaults.
	if s := drawings[1].Size(); s.Width != 100 || s.Height != 60 {
		t.Errorf("defaulted size = %vx%v, want 100x60", s.Width, s.Height)
	}
	if drawings[2].ShapeType != "ellipse" || drawings[2].Color != "#eef" {
		t.Errorf("node 2 style = %q/%q", drawings[2].ShapeType, drawings[2].Color)
	}

	rels := shape.Relationships(elements)
	if len(rels) != 2 {
		t.Fatalf("len(relationships) = %d, want 2", len(rels))
	}
	if rels[0].FromID != "user" || rels[0].ToID != "order" || rels[0].Type != "composition" {
		t.Errorf("connector 0 = %+v", rels[0])
	}
	if rels[1].Type != "association" {
		t.Errorf("connector 1 type = %q, want default association", rels[1].Type)
	}
	if rels[1].Label != "contains" {
		t.Errorf("connector 1 label = %q, want contains", rels[1].Label)
	}
}

func TestElementsDefaultsDimensionsIndependently(t *testing.T) {
	s := &Scene{Nodes: []Node{
		{ID: "wide", Width: 120},
		{ID: "tall", Height: 90},
	}}

	elements, err := s.Elements()
	if err != nil {
		t.Fatalf("Elements() error = %v", err)
	}

	drawings := shape.Drawings(elements)
	if sz := drawings[0].Size(); sz.Width != 120 || sz.Height != 60 {
		t.Errorf("wide = %vx%v, want 120x60", sz.Width, sz.Height)
	}
	if sz := drawings[1].Size(); sz.Width != 100 || sz.Height != 90 {
		t.Errorf("tall = %vx%v, want 100x90", sz.Width, sz.Height)
	}
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	s := &Scene{Nodes: []Node{{ID: "a"}, {ID: "a"}}}

	err := s.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Validate() = %v, want INVALID_SCENE", err)
	}
}

func TestValidateAllowsDanglingConnectors(t *testing.T) {
	s := &Scene{
		Nodes:      []Node{{ID: "a"}},
		Connectors: []Connector{{From: "a", To: "missing"}},
	}

	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil (dangling endpoints are legal)", err)
	}
}

func TestApplyPositions(t *testing.T) {
	s := sampleScene()
	elements, err := s.Elements()
	if err != nil {
		t.Fatalf("Elements() error = %v", err)
	}

	drawings := shape.Drawings(elements)
	drawings[0].SetPosition(geometry.Position{X: 11, Y: 22})
	drawings[2].SetPosition(geometry.Position{X: 33, Y: 44})

	s.ApplyPositions(elements)

	if s.Nodes[0].X != 11 || s.Nodes[0].Y != 22 {
		t.Errorf("node 0 at (%v, %v), want (11, 22)", s.Nodes[0].X, s.Nodes[0].Y)
	}
	if s.Nodes[2].X != 33 || s.Nodes[2].Y != 44 {
		t.Errorf("node 2 at (%v, %v), want (33, 44)", s.Nodes[2].X, s.Nodes[2].Y)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := sampleScene()

	var buf bytes.Buffer
	if err := Write(s, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	back, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if len(back.Nodes) != 3 || len(back.Connectors) != 2 {
		t.Fatalf("round trip lost elements: %d nodes, %d connectors", len(back.Nodes), len(back.Connectors))
	}
	if back.Nodes[0] != s.Nodes[0] {
		t.Errorf("node 0 round trip = %+v, want %+v", back.Nodes[0], s.Nodes[0])
	}
	if back.Canvas != s.Canvas {
		t.Errorf("canvas round trip = %+v, want %+v", back.Canvas, s.Canvas)
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.json")

	if err := WriteFile(sampleScene(), path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(back.Nodes) != 3 || len(back.Connectors) != 2 {
		t.Errorf("file round trip: %d nodes, %d connectors, want 3/2",
			len(back.Nodes), len(back.Connectors))
	}
}

func TestWriteFileReportsWriteFailure(t *testing.T) {
	// A directory path cannot be created as a file.
	if err := WriteFile(sampleScene(), t.TempDir()); err == nil {
		t.Error("WriteFile to a directory path should fail")
	}
}

func TestReadYAML(t *testing.T) {
	doc := `
name: services
canvas:
  width: 1280
  height: 720
nodes:
  - id: gateway
    name: Gateway
  - id: auth
    name: Auth Service
    width: 140
    height: 90
connectors:
  - from: gateway
    to: auth
    type: calls
`
	s, err := ReadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadYAML() error = %v", err)
	}

	if s.Canvas.Width != 1280 || s.Canvas.Height != 720 {
		t.Errorf("canvas = %+v, want 1280x720", s.Canvas)
	}
	if len(s.Nodes) != 2 || s.Nodes[1].Width != 140 {
		t.Errorf("nodes = %+v", s.Nodes)
	}
	if len(s.Connectors) != 1 || s.Connectors[0].Type != "calls" {
		t.Errorf("connectors = %+v", s.Connectors)
	}
}

func TestCanvasOrDefault(t *testing.T) {
	s := &Scene{}
	if c := s.CanvasOrDefault(); c.Width != 1920 || c.Height != 1080 {
		t.Errorf("CanvasOrDefault() = %+v, want 1920x1080", c)
	}

	s.Canvas = geometry.CanvasSize{Width: 640, Height: 480}
	if c := s.CanvasOrDefault(); c.Width != 640 {
		t.Errorf("CanvasOrDefault() = %+v, want 640x480", c)
	}
}
