package layout

import "github.com/ufmtooling/shapecanvas/pkg/shape"

// CheckOverlap reports whether two elements occupy intersecting canvas area
// under the engine's current padding. Relationships have zero footprint and
// never overlap anything; nil elements never overlap.
//
// Each box is inflated by the padding on its trailing (lower-right) edges
// only before the intersection test, so padding is enforced between a box
// and its right/bottom neighbors rather than symmetrically.
func (e *Engine) CheckOverlap(a, b shape.Element) bool {
	da, ok := a.(*shape.Drawing)
	if !ok || da == nil {
		return false
	}
	db, ok := b.(*shape.Drawing)
	if !ok || db == nil {
		return false
	}

	padding := e.config.Padding
	pa, sa := da.Position(), da.Size()
	pb, sb := db.Position(), db.Size()

	overlapX := pa.X+sa.Width+padding > pb.X && pb.X+sb.Width+padding > pa.X
	overlapY := pa.Y+sa.Height+padding > pb.Y && pb.Y+sb.Height+padding > pa.Y

	return overlapX && overlapY
}

// CountOverlaps counts overlapping unordered element pairs with the given
// padding, without requiring a configured engine.
func CountOverlaps(elements []shape.Element, padding float64) int {
	e := New()
	e.config.Padding = padding
	return e.CountOverlaps(elements)
}

// CountOverlaps returns the number of overlapping unordered element pairs.
// The scan is O(n²); relationship pairs are excluded by CheckOverlap itself.
func (e *Engine) CountOverlaps(elements []shape.Element) int {
	count := 0
	for i := 0; i < len(elements); i++ {
		for j := i + 1; j < len(elements); j++ {
			if e.CheckOverlap(elements[i], elements[j]) {
				count++
			}
		}
	}
	return count
}
