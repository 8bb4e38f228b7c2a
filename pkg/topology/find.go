package topology

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/matzehuels/linkdown/pkg/errors"
)

// Find locates the snapshot directory under base by searching recursively
// for the topology file. Hidden directories are not descended into.
//
// Exactly one topology file must exist below base; none or several is a
// MALFORMED_TOPOLOGY error. The returned path is the absolute directory
// holding the file, so a base of "." still names the snapshot.
func Find(base string) (string, error) {
	var found []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != base && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == FileName {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMalformedTopology, err, "search %s in %s", FileName, base)
	}

	switch len(found) {
	case 1:
		dir, err := filepath.Abs(filepath.Dir(found[0]))
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", found[0])
		}
		return dir, nil
	case 0:
		return "", errors.New(errors.ErrCodeMalformedTopology, "%s not found in snapshot directory %s", FileName, base)
	default:
		return "", errors.New(errors.ErrCodeMalformedTopology, "%s found multiple times in snapshot directory %s: %s",
			FileName, base, strings.Join(found, ", "))
	}
}
