package topology

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/linkdown/pkg/errors"
)

// Write encodes edges as a topology document and writes it to w.
// Output is indented with two spaces and HTML characters are left
// unescaped, so interface names survive byte for byte.
func Write(w io.Writer, edges []Edge) error {
	if edges == nil {
		edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Topology{Edges: edges}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Save writes edges as the topology file of dir, replacing any existing
// file. The directory must already exist. Edges are written in the order
// given.
func Save(dir string, edges []Edge) error {
	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "create %s", path)
	}
	if err := Write(f, edges); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "close %s", path)
	}
	return nil
}
