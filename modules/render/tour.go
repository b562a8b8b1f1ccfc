package render

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/goccy/go-graphviz"

	"tsp_aco/modules/models"
)

// Options configures tour drawings.
type Options struct {
	// Size is the length in points of the longer side of the drawing.
	Size float64
	// Labels shows city indices inside the nodes.
	Labels bool
}

func DefaultOptions() Options {
	return Options{Size: 432, Labels: true}
}

// ToDOT converts a tour over points to an undirected Graphviz graph. Node
// positions are pinned (neato "pos" with "!") to the scaled coordinates,
// y pointing up. Cities absent from the tour are drawn without edges.
func ToDOT(points []models.Point, tour []int, opts Options) string {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}

	var buf bytes.Buffer
	buf.WriteString("graph tour {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, width=0.3, fontsize=8];\n")
	buf.WriteString("  edge [color=\"#2a7f9e\", penwidth=1.5];\n")
	buf.WriteString("\n")

	minX, minY, scale := bounds(points, opts.Size)
	for _, p := range points {
		label := ""
		if opts.Labels {
			label = fmt.Sprint(p.Index)
		}
		fmt.Fprintf(&buf, "  \"%d\" [label=%q, pos=\"%.2f,%.2f!\"];\n",
			p.Index, label, (p.X-minX)*scale, (p.Y-minY)*scale)
	}

	buf.WriteString("\n")
	for _, e := range tourEdges(tour) {
		fmt.Fprintf(&buf, "  \"%d\" -- \"%d\";\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func tourEdges(tour []int) []models.Edge {
	switch len(tour) {
	case 0, 1:
		return nil
	case 2:
		return []models.Edge{{From: tour[0], To: tour[1]}}
	default:
		return models.ConvertTourToEdges(tour)
	}
}

// bounds returns the lower-left corner of points and the factor mapping
// the longer side of their bounding box onto size.
func bounds(points []models.Point, size float64) (minX, minY, scale float64) {
	if len(points) == 0 {
		return 0, 0, 1
	}

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	span := max(maxX-minX, maxY-minY)
	if span == 0 {
		return minX, minY, 1
	}

	return minX, minY, size / span
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato layout,
// which keeps the pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return buf.Bytes(), nil
}
