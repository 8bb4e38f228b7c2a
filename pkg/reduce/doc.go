// Package reduce derives reduced edge sets from a layer-1 topology.
//
// All functions are pure: they never modify their input slices and always
// return fresh ones, preserving the input order.
//
// # Deduplication
//
// Topology files list each cable once per direction more often than not.
// [Deduplicate] keeps the first occurrence of every undirected edge:
//
//	uniq := reduce.Deduplicate(topo.Edges)
//
// # Draw-off
//
// A draw-off simulates a node losing some or all of its links. [DrawOff]
// splits the edges into those touching the node on an interface matching a
// pattern ([Partition.Lost]) and the rest ([Partition.Found]):
//
//	p, err := reduce.DrawOff(topo.Edges, reduce.Criterion{Node: "pe01", Pattern: "ge-0/0/.*"})
//
// Hostnames compare case-insensitively. Patterns are regular expressions
// matched case-insensitively against the whole interface name; an empty
// pattern selects every interface of the node.
//
// # Plans
//
// [Reduce] turns a topology into the list of derivative snapshots to build:
// one [Plan] per distinct edge in [ModeBulk], exactly one in [ModeTargeted].
package reduce
