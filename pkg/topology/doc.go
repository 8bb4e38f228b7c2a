// Package topology reads and writes layer-1 topology edge lists.
//
// # Overview
//
// A snapshot directory carries its physical wiring in a single file,
// layer1_topology.json, shared with the external analysis service. The
// format is an ordered list of undirected edges between (host, interface)
// endpoints:
//
//	{
//	  "edges": [
//	    {
//	      "node1": {"hostname": "regiona-pe01", "interfaceName": "ge-0/0/0"},
//	      "node2": {"hostname": "regiona-ce01", "interfaceName": "Ethernet1"}
//	    }
//	  ]
//	}
//
// Field names and nesting are fixed; the analysis service consumes the same
// document.
//
// # Edge Equality
//
// Links are undirected: an edge and its [Edge.Reverse] describe the same
// cable. [Edge.Equal] implements that rule and [Edge.Key] gives a canonical,
// comparable form for map-based deduplication. Hostnames and interface names
// are compared exactly as stored.
//
// # Load and Save
//
// Use [Load] to read the topology of a snapshot directory and [Save] to
// write one. [Read] and [Write] work on any io.Reader/io.Writer. Output is
// indented with two spaces so derived snapshots diff cleanly against their
// source.
//
//	topo, err := topology.Load("snapshots/mddo_network")
//	if err != nil {
//	    return err
//	}
//	err = topology.Save("out/mddo_network_01", topo.Edges[1:])
//
// Any failure to read or decode the file is reported as a
// MALFORMED_TOPOLOGY error carrying the file path. Decoding is all or
// nothing.
package topology
