// Package export renders layer-1 topologies in formats meant for people
// rather than for the analysis service: YAML for reading and Graphviz
// DOT/SVG for looking at.
//
// The DOT output is an undirected graph with one vertex per host and one
// edge per link, labelled with the interface names at each end. Edges
// passed as highlighted (typically the lost edges of a derivative) are
// drawn dashed and red:
//
//	dot := export.ToDOT(topo.Edges, export.DOTOptions{Highlight: plan.Lost})
//	svg, err := export.RenderSVG(ctx, dot)
package export
