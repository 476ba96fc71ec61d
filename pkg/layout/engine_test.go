package layout

import (
	"testing"

	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/shape"
)

func boxes(n int, w, h float64) []shape.Element {
	out := make([]shape.Element, n)
	for i := range out {
		d := shape.NewDrawing("box")
		d.SetSize(geometry.Size{Width: w, Height: h})
		out[i] = d
	}
	return out
}

func TestArrangeEmptyCollection(t *testing.T) {
	strategies := []Strategy{StrategyGrid, StrategyHierarchical, StrategyForce, StrategyCircular}

	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			e := New()
			cfg := DefaultConfig()
			cfg.Strategy = s

			// A relationship-only collection has an empty drawing subset.
			rel := shape.NewRelationship("a", "b")
			rel.SetPosition(geometry.Position{X: 3, Y: 4})

			res := e.Arrange([]shape.Element{rel}, cfg)

			if !res.Success {
				t.Error("Success = false, want true")
			}
			if res.ElementsArranged != 0 {
				t.Errorf("ElementsArranged = %d, want 0", res.ElementsArranged)
			}
			if res.TotalArea != 0 {
				t.Errorf("TotalArea = %v, want 0", res.TotalArea)
			}
			if p := rel.Position(); p.X != 3 || p.Y != 4 {
				t.Errorf("relationship position mutated to (%v, %v)", p.X, p.Y)
			}
		})
	}
}

func TestArrangeUnknownStrategyFallsBackToGrid(t *testing.T) {
	e := NewWithCanvas(geometry.CanvasSize{Width: 1600, Height: 900})
	cfg := DefaultConfig()
	cfg.Strategy = Strategy(99)

	elements := boxes(1, 100, 60)
	res := e.Arrange(elements, cfg)

	if !res.Success || res.ElementsArranged != 1 {
		t.Fatalf("Result = %+v, want success with 1 arranged", res)
	}
	// Grid places the first element at the margin corner.
	if p := elements[0].Position(); p.X != 50 || p.Y != 50 {
		t.Errorf("position = (%v, %v), want (50, 50)", p.X, p.Y)
	}
}

func TestArrangeCurrentReusesLastConfig(t *testing.T) {
	e := NewWithCanvas(geometry.CanvasSize{Width: 1600, Height: 900})
	cfg := DefaultConfig()
	cfg.Strategy = StrategyCircular

	first := boxes(4, 100, 60)
	e.Arrange(first, cfg)

	if e.Strategy() != StrategyCircular {
		t.Fatalf("Strategy() = %v, want circular", e.Strategy())
	}

	second := boxes(4, 100, 60)
	e.ArrangeCurrent(second)

	for i := range first {
		p1, p2 := first[i].Position(), second[i].Position()
		if p1 != p2 {
			t.Errorf("element %d: ArrangeCurrent = (%v, %v), Arrange = (%v, %v)",
				i, p2.X, p2.Y, p1.X, p1.Y)
		}
	}
}

func TestEngineAccessors(t *testing.T) {
	e := New()

	if c := e.CanvasSize(); c.Width != 1920 || c.Height != 1080 {
		t.Errorf("CanvasSize() = %vx%v, want 1920x1080", c.Width, c.Height)
	}

	e.SetCanvasSize(geometry.CanvasSize{Width: 800, Height: 600})
	if c := e.CanvasSize(); c.Width != 800 || c.Height != 600 {
		t.Errorf("CanvasSize() = %vx%v after set, want 800x600", c.Width, c.Height)
	}

	cfg := DefaultConfig()
	cfg.Padding = 42
	e.SetConfig(cfg)
	if got := e.Config().Padding; got != 42 {
		t.Errorf("Config().Padding = %v, want 42", got)
	}

	e.SetStrategy(StrategyForce)
	if e.Strategy() != StrategyForce {
		t.Errorf("Strategy() = %v, want force", e.Strategy())
	}
	if e.Config().Padding != 42 {
		t.Error("SetStrategy clobbered the rest of the config")
	}

	if !e.Config().RespectConnections {
		t.Error("RespectConnections default = false, want true")
	}
}

// Five 120x80 boxes with four connectors on a 1600x900 canvas, grid strategy
// with padding 30: cell 150, cols = floor(1500/150) = 10, so a single row at
// x = 50, 200, 350, 500, 650 and y = 50.
func TestGridEndToEndScenario(t *testing.T) {
	e := NewWithCanvas(geometry.CanvasSize{Width: 1600, Height: 900})
	cfg := DefaultConfig()
	cfg.Padding = 30

	var elements []shape.Element
	var prev *shape.Drawing
	for i := 0; i < 5; i++ {
		d := shape.NewDrawing("node")
		d.SetSize(geometry.Size{Width: 120, Height: 80})
		elements = append(elements, d)
		if prev != nil {
			elements = append(elements, shape.NewRelationship(prev.ID(), d.ID()))
		}
		prev = d
	}

	res := e.Arrange(elements, cfg)

	if res.ElementsArranged != 5 {
		t.Fatalf("ElementsArranged = %d, want 5", res.ElementsArranged)
	}
	wantX := []float64{50, 200, 350, 500, 650}
	for i, d := range shape.Drawings(elements) {
		p := d.Position()
		if p.X != wantX[i] || p.Y != 50 {
			t.Errorf("box %d at (%v, %v), want (%v, 50)", i, p.X, p.Y, wantX[i])
		}
	}
	if want := 1500.0 * 800.0; res.TotalArea != want {
		t.Errorf("TotalArea = %v, want %v", res.TotalArea, want)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		want    Strategy
		wantErr bool
	}{
		{"grid", StrategyGrid, false},
		{"hierarchical", StrategyHierarchical, false},
		{"force", StrategyForce, false},
		{"circular", StrategyCircular, false},
		{"spiral", StrategyGrid, true},
		{"", StrategyGrid, true},
	}

	for _, tt := range tests {
		got, err := ParseStrategy(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	for _, s := range []Strategy{StrategyGrid, StrategyHierarchical, StrategyForce, StrategyCircular} {
		round, err := ParseStrategy(s.String())
		if err != nil || round != s {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", s.String(), round, err, s)
		}
	}
}
