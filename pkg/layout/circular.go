package layout

import (
	"math"

	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/shape"
)

// circularInset is the fixed distance the circle is pulled in from the
// usable area's edge.
const circularInset = 100.0

// arrangeCircular places every drawing evenly on a circle centered in the
// canvas, in input order starting at angle zero. Each box is offset by half
// its own dimensions so the box center, not the corner, sits on the circle.
// Relationship edges are ignored entirely.
func (e *Engine) arrangeCircular(elements []shape.Element) Result {
	drawings := shape.Drawings(elements)
	if len(drawings) == 0 {
		return emptyResult()
	}

	centerX := e.canvas.Width / 2
	centerY := e.canvas.Height / 2
	availableWidth := e.canvas.Width - e.config.MarginLeft - e.config.MarginRight
	availableHeight := e.canvas.Height - e.config.MarginTop - e.config.MarginBottom
	radius := math.Min(availableWidth, availableHeight)/2 - circularInset

	n := len(drawings)
	for i, d := range drawings {
		angle := 2 * math.Pi * float64(i) / float64(n)
		size := d.Size()
		d.SetPosition(geometry.Position{
			X: centerX + radius*math.Cos(angle) - size.Width/2,
			Y: centerY + radius*math.Sin(angle) - size.Height/2,
		})
	}

	return Result{
		Success:          true,
		ElementsArranged: n,
		TotalArea:        math.Pi * radius * radius,
	}
}
