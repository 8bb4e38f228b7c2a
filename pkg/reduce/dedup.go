package reduce

import "github.com/matzehuels/linkdown/pkg/topology"

// Deduplicate returns the edges with later undirected duplicates removed.
// The first occurrence of each edge is kept, in its original orientation,
// and the relative order of first occurrences is preserved.
func Deduplicate(edges []topology.Edge) []topology.Edge {
	seen := make(map[topology.EdgeKey]struct{}, len(edges))
	uniq := make([]topology.Edge, 0, len(edges))
	for _, e := range edges {
		k := e.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, e)
	}
	return uniq
}

// Duplicates returns the edges that Deduplicate drops, in input order.
func Duplicates(edges []topology.Edge) []topology.Edge {
	seen := make(map[topology.EdgeKey]struct{}, len(edges))
	var dups []topology.Edge
	for _, e := range edges {
		k := e.Key()
		if _, ok := seen[k]; ok {
			dups = append(dups, e)
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}
