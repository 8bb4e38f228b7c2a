package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/linkdown/pkg/topology"
)

// WriteYAML writes edges as a YAML topology document with the same field
// names as the JSON file.
func WriteYAML(w io.Writer, edges []topology.Edge) error {
	if edges == nil {
		edges = []topology.Edge{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	if err := enc.Encode(topology.Topology{Edges: edges}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}

// ReadYAML decodes a YAML topology document.
func ReadYAML(r io.Reader) (*topology.Topology, error) {
	var t topology.Topology
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if t.Edges == nil {
		t.Edges = []topology.Edge{}
	}
	return &t, nil
}
