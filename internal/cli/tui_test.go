package cli

import (
	"testing"

	"github.com/ufmtooling/shapecanvas/pkg/layout"
	"github.com/ufmtooling/shapecanvas/pkg/scene"
)

func TestStrategyChoicesFor(t *testing.T) {
	sc := &scene.Scene{
		Nodes: []scene.Node{
			{ID: "a"}, {ID: "b"}, {ID: "c"},
		},
		Connectors: []scene.Connector{
			{From: "a", To: "b"},
		},
	}

	choices := strategyChoicesFor(sc, layout.DefaultConfig())

	if len(choices) != 4 {
		t.Fatalf("got %d choices, want 4", len(choices))
	}
	for _, choice := range choices {
		if choice.Overlaps < 0 {
			t.Errorf("strategy %s has no overlap preview", choice.Name)
		}
	}

	// The preview must not position the caller's scene
	for _, n := range sc.Nodes {
		if n.X != 0 || n.Y != 0 {
			t.Errorf("node %s was moved by the preview: (%v, %v)", n.ID, n.X, n.Y)
		}
	}
}

func TestStrategyListModelCursor(t *testing.T) {
	m := NewStrategyListModel("force", nil)
	if got := m.Choices[m.Cursor].Name; got != "force" {
		t.Errorf("cursor on %q, want force", got)
	}

	m = NewStrategyListModel("unknown", nil)
	if m.Cursor != 0 {
		t.Errorf("unknown strategy should leave the cursor at 0, got %d", m.Cursor)
	}
}
