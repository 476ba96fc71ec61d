package layout

import (
	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/shape"
)

// levelSpacing is the fixed vertical distance between hierarchy levels.
const levelSpacing = 150.0

// arrangeHierarchical layers drawings by graph depth inferred from the
// relationship connectors: FromID is the parent end, ToID the child end.
//
// Leveling is a single pass over the relationship list in input order, not a
// BFS to a fixed point. A child reachable only through a parent processed
// later keeps an earlier (or no) assignment, and multi-parent children take
// whichever assignment lands last. This approximation is deliberate and
// pinned by tests; replacing it with true shortest-path leveling changes
// observable coordinates.
func (e *Engine) arrangeHierarchical(elements []shape.Element) Result {
	drawings := shape.Drawings(elements)
	relationships := shape.Relationships(elements)

	if len(drawings) == 0 {
		return emptyResult()
	}

	// Roots are drawings that are never a child end of any relationship.
	levels := make(map[string]int)
	rootless := true
	for _, d := range drawings {
		hasParent := false
		for _, rel := range relationships {
			if rel.ToID == d.ID() {
				hasParent = true
				break
			}
		}
		if !hasParent {
			levels[d.ID()] = 0
			rootless = false
		}
	}

	// Cyclic or fully-connected graphs degrade to a single level.
	if rootless {
		for _, d := range drawings {
			levels[d.ID()] = 0
		}
	}

	// Single-pass child level assignment in relationship order.
	for _, rel := range relationships {
		if rel.FromID == "" || rel.ToID == "" {
			continue
		}
		if parentLevel, ok := levels[rel.FromID]; ok {
			levels[rel.ToID] = parentLevel + 1
		}
	}

	maxLevel := 0
	for _, level := range levels {
		if level > maxLevel {
			maxLevel = level
		}
	}

	// Bucket drawings by level; unassigned drawings default to level 0.
	buckets := make([][]*shape.Drawing, maxLevel+1)
	for _, d := range drawings {
		level := levels[d.ID()]
		buckets[level] = append(buckets[level], d)
	}

	availableWidth := e.canvas.Width - e.config.MarginLeft - e.config.MarginRight
	availableHeight := e.canvas.Height - e.config.MarginTop - e.config.MarginBottom

	// Space each level's drawings evenly across the available width with
	// k+1 equal gaps, centering each box on its slot.
	for level, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		gap := availableWidth / float64(len(bucket)+1)
		y := e.config.MarginTop + float64(level)*levelSpacing

		for i, d := range bucket {
			x := e.config.MarginLeft + float64(i+1)*gap - d.Size().Width/2
			d.SetPosition(geometry.Position{X: x, Y: y})
		}
	}

	return Result{
		Success:          true,
		ElementsArranged: len(drawings),
		TotalArea:        availableWidth * availableHeight,
	}
}
