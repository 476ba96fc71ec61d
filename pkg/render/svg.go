package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ufmtooling/shapecanvas/pkg/scene"
)

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	showLabels bool
	showArrows bool
}

// WithBackground sets the canvas background color. Default is white.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithoutLabels suppresses node and connector text.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = false } }

// WithoutArrows draws connectors as plain lines without arrowheads.
func WithoutArrows() SVGOption { return func(r *svgRenderer) { r.showArrows = false } }

const (
	defaultNodeWidth  = 100.0
	defaultNodeHeight = 60.0
	nodeFontSize      = 14.0
	labelFontSize     = 12.0
)

// RenderSVG draws an arranged scene as a standalone SVG document.
//
// Connectors are drawn first so boxes sit on top of their lines. Connector
// endpoints are resolved by node identifier; connectors referencing missing
// nodes are skipped, mirroring how the layout strategies treat them.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{background: "white", showLabels: true, showArrows: true}
	for _, opt := range opts {
		opt(&r)
	}

	canvas := sc.CanvasOrDefault()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		canvas.Width, canvas.Height, canvas.Width, canvas.Height)

	if r.showArrows {
		renderArrowDefs(&buf)
	}
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		canvas.Width, canvas.Height, escapeXML(r.background))

	byID := make(map[string]scene.Node, len(sc.Nodes))
	for _, n := range sc.Nodes {
		byID[n.ID] = n
	}

	for _, c := range sc.Connectors {
		from, okFrom := byID[c.From]
		to, okTo := byID[c.To]
		if !okFrom || !okTo {
			continue
		}
		renderConnector(&buf, &r, from, to, c)
	}

	for _, n := range sc.Nodes {
		renderNode(&buf, &r, n)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderArrowDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">` + "\n")
	buf.WriteString(`      <path d="M 0 0 L 10 5 L 0 10 z" fill="#333"/>` + "\n")
	buf.WriteString("    </marker>\n")
	buf.WriteString("  </defs>\n")
}

func renderNode(buf *bytes.Buffer, r *svgRenderer, n scene.Node) {
	w, h := nodeSize(n)
	fill := n.Color
	if fill == "" {
		fill = "white"
	}

	switch strings.ToLower(n.Shape) {
	case "ellipse", "circle":
		fmt.Fprintf(buf, `  <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" stroke="#333" stroke-width="1.5"/>`+"\n",
			n.X+w/2, n.Y+h/2, w/2, h/2, escapeXML(fill))
	default:
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" stroke="#333" stroke-width="1.5"/>`+"\n",
			n.X, n.Y, w, h, escapeXML(fill))
	}

	if r.showLabels && n.Name != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" font-family="sans-serif" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			n.X+w/2, n.Y+h/2, nodeFontSize, escapeXML(n.Name))
	}
}

func renderConnector(buf *bytes.Buffer, r *svgRenderer, from, to scene.Node, c scene.Connector) {
	fw, fh := nodeSize(from)
	tw, th := nodeSize(to)
	x1, y1 := from.X+fw/2, from.Y+fh/2
	x2, y2 := to.X+tw/2, to.Y+th/2

	marker := ""
	if r.showArrows {
		marker = ` marker-end="url(#arrow)"`
	}
	dash := ""
	if strings.EqualFold(c.Type, "dependency") {
		dash = ` stroke-dasharray="6,4"`
	}
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="1.5"%s%s/>`+"\n",
		x1, y1, x2, y2, dash, marker)

	if r.showLabels && c.Label != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" font-family="sans-serif" text-anchor="middle">%s</text>`+"\n",
			(x1+x2)/2, (y1+y2)/2-4, labelFontSize, escapeXML(c.Label))
	}
}

func nodeSize(n scene.Node) (w, h float64) {
	w, h = n.Width, n.Height
	if w == 0 && h == 0 {
		w, h = defaultNodeWidth, defaultNodeHeight
	}
	return w, h
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
