package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ufmtooling/shapecanvas/pkg/scene"
)

// DOTOptions configures DOT export.
type DOTOptions struct {
	// Detailed includes shape, color, and size attributes in node labels.
	// When false, only the node name (or ID) is shown.
	Detailed bool
}

// ToDOT converts a scene to Graphviz DOT format for node-link visualization.
// Positions are intentionally not exported; Graphviz computes its own layout,
// which makes DOT output useful for comparing against the engine's result.
//
// The resulting DOT string can be rendered with [DOTToSVG] or [DOTToPNG].
func ToDOT(sc *scene.Scene, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range sc.Nodes {
		label := dotLabel(n, opts.Detailed)
		attrs := dotAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range sc.Connectors {
		attrs := ""
		if c.Label != "" {
			attrs = fmt.Sprintf(" [label=%q]", c.Label)
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", c.From, c.To, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(n scene.Node, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	if !detailed {
		return name
	}

	w, h := nodeSize(n)
	parts := []string{fmt.Sprintf("%.0fx%.0f", w, h)}
	if n.Shape != "" {
		parts = append(parts, n.Shape)
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func dotAttrs(n scene.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Color != "" && !strings.EqualFold(n.Color, "white") {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color))
	}
	if strings.EqualFold(n.Shape, "ellipse") || strings.EqualFold(n.Shape, "circle") {
		attrs = append(attrs, "shape=ellipse")
	}
	return attrs
}

// DOTToSVG renders a DOT graph to SVG using Graphviz.
func DOTToSVG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// DOTToPNG renders a DOT graph to PNG using Graphviz.
func DOTToPNG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderDOT(dot string, format graphviz.Format, buf *bytes.Buffer) error {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg tag so the viewBox starts at the
// origin and the pixel size matches the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
