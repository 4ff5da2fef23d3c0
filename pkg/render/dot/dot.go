// Package dot exports a node graph to Graphviz DOT for visual inspection,
// with optional SVG/PNG rendering.
//
// This is a diagnostic companion to the pseudocode transcript: exec edges
// are drawn solid and labeled with their source pin, data edges dashed and
// grey. Knot/reroute nodes collapse to points so the routing noise of the
// original layout stays out of the way.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/graphscribe/graphscribe/pkg/describe"
	"github.com/graphscribe/graphscribe/pkg/graph"
)

// Options configures DOT export.
type Options struct {
	// DataEdges includes data connections (dashed) alongside exec edges.
	DataEdges bool
}

// ToDOT converts a graph snapshot to Graphviz DOT format. The resulting
// string can be rendered with [RenderSVG] or [RenderPNG].
//
// Dangling connections are skipped, matching the renderer's tolerance for
// partial input.
func ToDOT(g graph.Graph, opts Options) string {
	lookup := g.Lookup()
	entries := map[string]bool{}
	for _, e := range describe.EntryNodes(g) {
		entries[e.ID] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, entries[n.ID]), ", "))
	}

	buf.WriteString("\n")
	for i := range g.Nodes {
		n := &g.Nodes[i]
		for _, pin := range n.Pins {
			if !pin.IsOutput() {
				continue
			}
			if !pin.IsExec() && !opts.DataEdges {
				continue
			}
			for _, conn := range pin.Connections {
				if _, ok := lookup[conn.TargetNodeID]; !ok {
					continue // dangling
				}
				fmt.Fprintf(&buf, "  %q -> %q [%s];\n", n.ID, conn.TargetNodeID, strings.Join(edgeAttrs(pin), ", "))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, isEntry bool) []string {
	label := describe.Classify(n)
	if label == "" {
		// Knots and other pass-through nodes collapse to routing points.
		return []string{"shape=point", "width=0.08"}
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if isEntry {
		attrs = append(attrs, "peripheries=2", "fillcolor=lightyellow")
	}
	return attrs
}

func edgeAttrs(pin graph.Pin) []string {
	if pin.IsExec() {
		return []string{fmt.Sprintf("label=%q", pin.Name), "fontsize=9"}
	}
	return []string{"style=dashed", "color=grey50", "arrowsize=0.6"}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
