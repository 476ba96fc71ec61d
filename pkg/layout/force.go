package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ufmtooling/shapecanvas/pkg/geometry"
	"github.com/ufmtooling/shapecanvas/pkg/shape"
)

// Force simulation constants. These are part of the observable contract:
// the simulation runs exactly forceIterations rounds with no convergence
// test, so changing any constant changes final coordinates.
const (
	forceIterations = 50
	springConstant  = 100.0 // linear spring along relationship edges
	repulsion       = 5000.0
	damping         = 0.8
	restLength      = 200.0 // target separation for connected drawings
	minDistance     = 1.0   // floor to avoid singularities
	seedRadius      = 200.0
)

// arrangeForce relaxes positions with inverse-square repulsion between all
// drawing pairs and linear spring attraction along relationship edges.
//
// Drawings are seeded on a circle of radius 200 around the canvas center in
// input order, so the result is deterministic. Each iteration sums forces
// per drawing, scales by damping, applies the displacement, and clamps into
// the margin box; positions are clamped, not bounced.
func (e *Engine) arrangeForce(elements []shape.Element) Result {
	drawings := shape.Drawings(elements)
	relationships := shape.Relationships(elements)

	if len(drawings) == 0 {
		return emptyResult()
	}

	center := r2.Vec{X: e.canvas.Width / 2, Y: e.canvas.Height / 2}
	n := len(drawings)

	for i, d := range drawings {
		angle := 2 * math.Pi * float64(i) / float64(n)
		d.SetPosition(geometry.Position{
			X: center.X + seedRadius*math.Cos(angle),
			Y: center.Y + seedRadius*math.Sin(angle),
		})
	}

	// Resolve relationship endpoints to drawing indices once. Endpoints that
	// are empty or absent from the drawing subset contribute nothing.
	index := make(map[string]int, n)
	for i, d := range drawings {
		if _, ok := index[d.ID()]; !ok {
			index[d.ID()] = i
		}
	}
	type edge struct{ i, j int }
	var edges []edge
	for _, rel := range relationships {
		i, ok1 := index[rel.FromID]
		j, ok2 := index[rel.ToID]
		if ok1 && ok2 {
			edges = append(edges, edge{i, j})
		}
	}

	forces := make([]r2.Vec, n)

	for iter := 0; iter < forceIterations; iter++ {
		for i := range forces {
			forces[i] = r2.Vec{}
		}

		// Inverse-square repulsion between every unordered pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pi, pj := drawings[i].Position(), drawings[j].Position()
				delta := r2.Vec{X: pi.X - pj.X, Y: pi.Y - pj.Y}
				dist := math.Max(r2.Norm(delta), minDistance)

				push := r2.Scale(repulsion/(dist*dist*dist), delta)
				forces[i] = r2.Add(forces[i], push)
				forces[j] = r2.Sub(forces[j], push)
			}
		}

		// Linear springs along relationship edges pull or push connected
		// drawings toward the rest length.
		for _, ed := range edges {
			pi, pj := drawings[ed.i].Position(), drawings[ed.j].Position()
			delta := r2.Vec{X: pj.X - pi.X, Y: pj.Y - pi.Y}
			dist := math.Max(r2.Norm(delta), minDistance)

			pull := r2.Scale(springConstant*(dist-restLength)/(dist*dist), delta)
			forces[ed.i] = r2.Add(forces[ed.i], pull)
			forces[ed.j] = r2.Sub(forces[ed.j], pull)
		}

		for i, d := range drawings {
			pos := d.Position()
			pos.X += forces[i].X * damping
			pos.Y += forces[i].Y * damping

			size := d.Size()
			pos.X = math.Max(e.config.MarginLeft,
				math.Min(pos.X, e.canvas.Width-e.config.MarginRight-size.Width))
			pos.Y = math.Max(e.config.MarginTop,
				math.Min(pos.Y, e.canvas.Height-e.config.MarginBottom-size.Height))

			d.SetPosition(pos)
		}
	}

	return Result{
		Success:          true,
		ElementsArranged: n,
		TotalArea:        e.canvas.Width * e.canvas.Height,
	}
}
