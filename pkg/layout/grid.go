package layout

import (
	"math"

	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/shape"
)

// arrangeGrid tiles drawings into a uniform grid filling the usable canvas
// area. Cells are sized to the largest drawing plus padding, so mixed-size
// collections still land on a regular lattice. The algorithm fills rows
// first; if the resulting grid would overflow the available height it caps
// the row count and widens instead, accepting horizontal overflow when the
// element count is large relative to cell size.
func (e *Engine) arrangeGrid(elements []shape.Element) Result {
	drawings := shape.Drawings(elements)
	if len(drawings) == 0 {
		return emptyResult()
	}

	availableWidth := e.canvas.Width - e.config.MarginLeft - e.config.MarginRight
	availableHeight := e.canvas.Height - e.config.MarginTop - e.config.MarginBottom

	var maxWidth, maxHeight float64
	for _, d := range drawings {
		maxWidth = math.Max(maxWidth, d.Size().Width)
		maxHeight = math.Max(maxHeight, d.Size().Height)
	}

	cellWidth := maxWidth + e.config.Padding
	cellHeight := maxHeight + e.config.Padding

	cols := int(availableWidth / cellWidth)
	if cols < 1 {
		cols = 1
	}
	rows := int(math.Ceil(float64(len(drawings)) / float64(cols)))

	// Prefer to fit vertically by widening rather than overflow the canvas.
	if float64(rows)*cellHeight > availableHeight {
		rows = int(availableHeight / cellHeight)
		if rows < 1 {
			rows = 1
		}
		cols = int(math.Ceil(float64(len(drawings)) / float64(rows)))
	}

	// Row-major placement in input order. No centering within a cell.
	index := 0
	for row := 0; row < rows && index < len(drawings); row++ {
		for col := 0; col < cols && index < len(drawings); col++ {
			drawings[index].SetPosition(geometry.Position{
				X: e.config.MarginLeft + float64(col)*cellWidth,
				Y: e.config.MarginTop + float64(row)*cellHeight,
			})
			index++
		}
	}

	return Result{
		Success:          true,
		ElementsArranged: len(drawings),
		TotalArea:        availableWidth * availableHeight,
	}
}
