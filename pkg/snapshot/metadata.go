package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/topology"
)

// MetadataFileName is the provenance record written into each derivative.
const MetadataFileName = "snapshot_info.json"

// Metadata records how a derivative snapshot was produced.
type Metadata struct {
	Index                int             `json:"index"`
	LostEdges            []topology.Edge `json:"lost_edges"`
	OriginalSnapshotPath string          `json:"original_snapshot_path"`
	SnapshotPath         string          `json:"snapshot_path"`
	Description          string          `json:"description"`
}

// NewMetadata builds the provenance record of a derivative.
func NewMetadata(index int, src, dst string, lost []topology.Edge, description string) Metadata {
	if lost == nil {
		lost = []topology.Edge{}
	}
	return Metadata{
		Index:                index,
		LostEdges:            lost,
		OriginalSnapshotPath: src,
		SnapshotPath:         dst,
		Description:          description,
	}
}

// WriteMetadata encodes m as indented JSON.
func WriteMetadata(w io.Writer, m Metadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// SaveMetadata writes m to the metadata file of dir.
func SaveMetadata(dir string, m Metadata) error {
	path := filepath.Join(dir, MetadataFileName)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "create %s", path)
	}
	if err := WriteMetadata(f, m); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "close %s", path)
	}
	return nil
}
