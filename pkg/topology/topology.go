package topology

import (
	"cmp"
	"fmt"
)

// FileName is the fixed name of the topology file inside a snapshot directory.
const FileName = "layer1_topology.json"

// Endpoint is one side of a physical link.
type Endpoint struct {
	Hostname      string `json:"hostname" yaml:"hostname"`
	InterfaceName string `json:"interfaceName" yaml:"interfaceName"`
}

// String renders the endpoint as "host[interface]".
func (ep Endpoint) String() string {
	return fmt.Sprintf("%s[%s]", ep.Hostname, ep.InterfaceName)
}

func compareEndpoints(a, b Endpoint) int {
	if c := cmp.Compare(a.Hostname, b.Hostname); c != 0 {
		return c
	}
	return cmp.Compare(a.InterfaceName, b.InterfaceName)
}

// Edge is an undirected physical link between two endpoints.
type Edge struct {
	Node1 Endpoint `json:"node1" yaml:"node1"`
	Node2 Endpoint `json:"node2" yaml:"node2"`
}

// NewEdge builds an edge from two host/interface pairs.
func NewEdge(host1, iface1, host2, iface2 string) Edge {
	return Edge{
		Node1: Endpoint{Hostname: host1, InterfaceName: iface1},
		Node2: Endpoint{Hostname: host2, InterfaceName: iface2},
	}
}

// Reverse returns the edge with its endpoints swapped.
func (e Edge) Reverse() Edge {
	return Edge{Node1: e.Node2, Node2: e.Node1}
}

// Equal reports whether e and o describe the same link in either direction.
func (e Edge) Equal(o Edge) bool {
	return e == o || e.Reverse() == o
}

// EdgeKey is the canonical form of an edge: its endpoints in ascending
// (hostname, interfaceName) order. Two edges are Equal iff their keys are.
type EdgeKey struct {
	Low, High Endpoint
}

// Key returns the canonical key of e.
func (e Edge) Key() EdgeKey {
	if compareEndpoints(e.Node1, e.Node2) <= 0 {
		return EdgeKey{Low: e.Node1, High: e.Node2}
	}
	return EdgeKey{Low: e.Node2, High: e.Node1}
}

// IsLoop reports whether both ends of the edge are the same endpoint.
// Such edges are malformed input; they are reported but never rejected.
func (e Edge) IsLoop() bool {
	return e.Node1 == e.Node2
}

// String renders the edge as "host1[iface1] <=> host2[iface2]".
func (e Edge) String() string {
	return fmt.Sprintf("%s <=> %s", e.Node1, e.Node2)
}

// Topology is an ordered edge list as stored in a snapshot directory.
type Topology struct {
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Len returns the number of edges.
func (t *Topology) Len() int {
	return len(t.Edges)
}

// Hosts returns the distinct hostnames in order of first appearance.
func (t *Topology) Hosts() []string {
	seen := make(map[string]bool)
	var hosts []string
	for _, e := range t.Edges {
		for _, h := range []string{e.Node1.Hostname, e.Node2.Hostname} {
			if !seen[h] {
				seen[h] = true
				hosts = append(hosts, h)
			}
		}
	}
	return hosts
}

// Loops returns the edges whose two endpoints are identical.
func (t *Topology) Loops() []Edge {
	var loops []Edge
	for _, e := range t.Edges {
		if e.IsLoop() {
			loops = append(loops, e)
		}
	}
	return loops
}
