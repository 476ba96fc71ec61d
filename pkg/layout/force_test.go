package layout

import (
	"math"
	"testing"

	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/shape"
)

func TestForceStaysInMarginBox(t *testing.T) {
	e := NewWithCanvas(geometry.CanvasSize{Width: 1600, Height: 900})
	cfg := DefaultConfig()
	cfg.Strategy = StrategyForce

	var elements []shape.Element
	drawings := make([]*shape.Drawing, 8)
	for i := range drawings {
		drawings[i] = shape.NewDrawing("node")
		drawings[i].SetSize(geometry.Size{Width: 120, Height: 80})
		elements = append(elements, drawings[i])
	}
	// Chain connectors so springs act alongside repulsion.
	for i := 1; i < len(drawings); i++ {
		elements = append(elements, shape.NewRelationship(drawings[i-1].ID(), drawings[i].ID()))
	}

	res := e.Arrange(elements, cfg)

	if res.ElementsArranged != 8 {
		t.Fatalf("ElementsArranged = %d, want 8", res.ElementsArranged)
	}
	if want := 1600.0 * 900.0; res.TotalArea != want {
		t.Errorf("TotalArea = %v, want full canvas %v", res.TotalArea, want)
	}

	for i, d := range drawings {
		p := d.Position()
		if p.X < cfg.MarginLeft || p.X > 1600-cfg.MarginRight-120 {
			t.Errorf("node %d x = %v, outside [%v, %v]", i, p.X, cfg.MarginLeft, 1600-cfg.MarginRight-120)
		}
		if p.Y < cfg.MarginTop || p.Y > 900-cfg.MarginBottom-80 {
			t.Errorf("node %d y = %v, outside [%v, %v]", i, p.Y, cfg.MarginTop, 900-cfg.MarginBottom-80)
		}
	}
}

func TestForceDeterminism(t *testing.T) {
	run := func() []geometry.Position {
		e := New()
		cfg := DefaultConfig()
		cfg.Strategy = StrategyForce

		a := shape.NewDrawing("a")
		b := shape.NewDrawing("b")
		c := shape.NewDrawing("c")
		elements := []shape.Element{
			a, b, c,
			shape.NewRelationship(a.ID(), b.ID()),
			shape.NewRelationship(b.ID(), c.ID()),
		}
		e.Arrange(elements, cfg)
		return []geometry.Position{a.Position(), b.Position(), c.Position()}
	}

	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("node %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// A single drawing experiences no forces: it stays exactly on its circular
// seed point at angle 0, canvas center + (200, 0).
func TestForceSingleDrawingStaysAtSeed(t *testing.T) {
	e := New()
	cfg := DefaultConfig()
	cfg.Strategy = StrategyForce

	d := shape.NewDrawing("lonely")
	e.Arrange([]shape.Element{d}, cfg)

	p := d.Position()
	if p.X != 960+200 || p.Y != 540 {
		t.Errorf("position = (%v, %v), want (1160, 540)", p.X, p.Y)
	}
}

func TestForceIgnoresDanglingConnectors(t *testing.T) {
	e := New()
	cfg := DefaultConfig()
	cfg.Strategy = StrategyForce

	run := func(extra ...shape.Element) []geometry.Position {
		a := shape.NewDrawing("a")
		a.SetID("a")
		b := shape.NewDrawing("b")
		b.SetID("b")
		elements := append([]shape.Element{a, b}, extra...)
		e.Arrange(elements, cfg)
		return []geometry.Position{a.Position(), b.Position()}
	}

	bare := run()
	dangling := run(
		shape.NewRelationship("a", "nowhere"),
		shape.NewRelationship("", "b"),
	)

	for i := range bare {
		if bare[i] != dangling[i] {
			t.Errorf("node %d: dangling connectors changed position %+v vs %+v",
				i, dangling[i], bare[i])
		}
	}
}

func TestForceConnectedPairApproachesRestLength(t *testing.T) {
	e := New()
	cfg := DefaultConfig()
	cfg.Strategy = StrategyForce

	a := shape.NewDrawing("a")
	b := shape.NewDrawing("b")
	e.Arrange([]shape.Element{a, b, shape.NewRelationship(a.ID(), b.ID())}, cfg)

	pa, pb := a.Position(), b.Position()
	dist := math.Hypot(pa.X-pb.X, pa.Y-pb.Y)

	// Spring (rest length 200) and repulsion balance near
	// d² (d - 200) = 50 ⇒ d ≈ 200.4; 50 damped iterations get close.
	if dist < 190 || dist > 215 {
		t.Errorf("separation = %v, want near rest length 200", dist)
	}
}
