package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/linkdown/pkg/topology"
)

// DOTOptions configures DOT generation.
type DOTOptions struct {
	// Highlight lists edges to draw dashed and red. Matching is undirected.
	Highlight []topology.Edge
	// Labels adds interface names at both ends of every edge.
	Labels bool
}

// ToDOT converts an edge list to an undirected Graphviz graph.
// Hosts appear in order of first use; edges keep their input order.
func ToDOT(edges []topology.Edge, opts DOTOptions) string {
	highlight := make(map[topology.EdgeKey]bool, len(opts.Highlight))
	for _, e := range opts.Highlight {
		highlight[e.Key()] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph L1 {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	topo := topology.Topology{Edges: edges}
	for _, h := range topo.Hosts() {
		fmt.Fprintf(&buf, "  %q;\n", h)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		var attrs []string
		if opts.Labels {
			attrs = append(attrs,
				fmt.Sprintf("taillabel=%q", e.Node1.InterfaceName),
				fmt.Sprintf("headlabel=%q", e.Node2.InterfaceName))
		}
		if highlight[e.Key()] {
			attrs = append(attrs, "style=dashed", "color=red")
		}
		fmt.Fprintf(&buf, "  %q -- %q", e.Node1.Hostname, e.Node2.Hostname)
		if len(attrs) > 0 {
			buf.WriteString(" [")
			for i, a := range attrs {
				if i > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(a)
			}
			buf.WriteString("]")
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
