package layout

import (
	"testing"

	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/shape"
)

func placedBox(x, y, w, h float64) *shape.Drawing {
	d := shape.NewDrawing("box")
	d.SetPosition(geometry.Position{X: x, Y: y})
	d.SetSize(geometry.Size{Width: w, Height: h})
	return d
}

func TestCheckOverlapCoincidentBoxes(t *testing.T) {
	e := New()
	a := placedBox(100, 100, 100, 60)
	b := placedBox(100, 100, 100, 60)

	if !e.CheckOverlap(a, b) {
		t.Error("coincident boxes should overlap")
	}

	cfg := e.Config()
	cfg.Padding = 0
	e.SetConfig(cfg)
	if !e.CheckOverlap(a, b) {
		t.Error("coincident boxes should overlap even with zero padding")
	}
}

func TestCheckOverlapDistantBoxes(t *testing.T) {
	e := New()
	a := placedBox(0, 0, 100, 60)
	b := placedBox(500, 500, 100, 60)

	if e.CheckOverlap(a, b) {
		t.Error("distant boxes should not overlap")
	}
}

// Padding inflates the trailing edges only: two boxes separated by exactly
// the padding gap are on the strict-inequality boundary and do not overlap,
// while anything closer does.
func TestCheckOverlapPaddingBoundary(t *testing.T) {
	e := New()
	cfg := e.Config()
	cfg.Padding = 20
	e.SetConfig(cfg)

	a := placedBox(0, 0, 100, 60)

	atBoundary := placedBox(120, 0, 100, 60) // gap exactly 20
	if e.CheckOverlap(a, atBoundary) {
		t.Error("gap equal to padding should not overlap")
	}

	inside := placedBox(119, 0, 100, 60) // gap 19
	if !e.CheckOverlap(a, inside) {
		t.Error("gap below padding should overlap")
	}

	// Symmetric in argument order even though the inflation is asymmetric.
	if e.CheckOverlap(atBoundary, a) || !e.CheckOverlap(inside, a) {
		t.Error("overlap test should not depend on argument order")
	}
}

func TestCheckOverlapExcludesRelationships(t *testing.T) {
	e := New()
	a := placedBox(0, 0, 100, 60)
	r := shape.NewRelationship(a.ID(), a.ID())
	r.SetPosition(geometry.Position{X: 0, Y: 0})

	if e.CheckOverlap(a, r) || e.CheckOverlap(r, a) || e.CheckOverlap(r, r) {
		t.Error("relationships have zero footprint and never overlap")
	}
	if e.CheckOverlap(nil, a) || e.CheckOverlap(a, nil) || e.CheckOverlap(nil, nil) {
		t.Error("nil elements never overlap")
	}

	var typedNil *shape.Drawing
	if e.CheckOverlap(typedNil, a) {
		t.Error("typed nil drawing should not overlap")
	}
}

func TestCountOverlaps(t *testing.T) {
	e := New()
	cfg := e.Config()
	cfg.Padding = 0
	e.SetConfig(cfg)

	stacked := []shape.Element{
		placedBox(0, 0, 100, 60),
		placedBox(10, 10, 100, 60),
		placedBox(1000, 1000, 100, 60),
	}

	if got := e.CountOverlaps(stacked); got != 1 {
		t.Errorf("CountOverlaps() = %d, want 1", got)
	}
}

func TestCountOverlapsPackageLevel(t *testing.T) {
	elements := []shape.Element{
		placedBox(0, 0, 100, 60),
		placedBox(110, 0, 100, 60),
	}

	// 10 apart horizontally: clear at zero padding, overlapping at 20
	if got := CountOverlaps(elements, 0); got != 0 {
		t.Errorf("CountOverlaps(padding=0) = %d, want 0", got)
	}
	if got := CountOverlaps(elements, 20); got != 1 {
		t.Errorf("CountOverlaps(padding=20) = %d, want 1", got)
	}
}

func TestCountOverlapsRelationshipOnly(t *testing.T) {
	e := New()
	elements := []shape.Element{
		shape.NewRelationship("a", "b"),
		shape.NewRelationship("b", "c"),
		shape.NewRelationship("c", "a"),
	}

	if got := e.CountOverlaps(elements); got != 0 {
		t.Errorf("CountOverlaps() = %d, want 0 for relationship-only collection", got)
	}
}
