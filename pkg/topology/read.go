package topology

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/linkdown/pkg/errors"
)

// Read decodes a topology document from r.
//
// The input must be a single JSON object. A missing or null "edges" field
// yields an empty topology; a null edge entry and trailing data after the
// object are rejected. Read does not close r.
func Read(r io.Reader) (*Topology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("decode: topology document is not a JSON object")
	}
	var doc struct {
		Edges []*Edge `json:"edges"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	t := &Topology{Edges: make([]Edge, 0, len(doc.Edges))}
	for i, e := range doc.Edges {
		if e == nil {
			return nil, fmt.Errorf("decode: edge %d is null", i)
		}
		t.Edges = append(t.Edges, *e)
	}
	return t, nil
}

// Load reads the topology file of the snapshot directory dir.
//
// A missing, unreadable or undecodable file yields a MALFORMED_TOPOLOGY
// error naming the file. No partial result is returned.
func Load(dir string) (*Topology, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedTopology, err, "cannot open %s", path)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedTopology, err, "cannot read %s", path)
	}
	return t, nil
}
