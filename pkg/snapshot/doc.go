// Package snapshot materializes derivative network snapshots on disk.
//
// # Layout
//
// A snapshot directory holds the layer-1 topology file at its root and any
// number of artifact subdirectories (device configurations, host
// definitions) consumed verbatim by the analysis service:
//
//	mddo_network/
//	├── layer1_topology.json
//	├── configs/
//	│   ├── regiona-pe01.cfg
//	│   └── regiona-ce01.cfg
//	└── hosts/
//
// A derivative produced by this package has the same shape, a reduced
// topology and a snapshot_info.json provenance record:
//
//	out/mddo_network_01/
//	├── layer1_topology.json   (rewritten)
//	├── snapshot_info.json
//	├── configs/               (hard links)
//	└── hosts/                 (hard links)
//
// # Hard Links
//
// Artifact files are never copied. Each destination file is a hard link to
// the source inode, so hundreds of near-identical derivatives cost one
// directory entry per file. Linked files share their data: editing one
// in place edits every snapshot that links it.
//
// # Materializer
//
// [Materializer.Materialize] builds one derivative from a [Request].
// [Materializer.Run] drives a list of [reduce.Plan] values in index order,
// naming destinations with [DirName]. The destination is removed and
// rebuilt from scratch every time; the source is only ever read.
//
// With [Options.DryRun] set no filesystem call that writes is made: the
// lost edges are logged and the derivative is skipped.
//
// [reduce.Plan]: github.com/matzehuels/linkdown/pkg/reduce.Plan
package snapshot
