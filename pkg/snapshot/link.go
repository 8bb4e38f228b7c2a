package snapshot

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/linkdown/pkg/errors"
)

// linkStats counts the outcome of linking one artifact tree.
type linkStats struct {
	linked  int
	skipped []string
}

// linkTree mirrors the directory tree under src into dst, hard-linking every
// non-directory entry. Entries whose name starts with a dot are ignored.
//
// A missing src is treated as an empty tree. A destination entry that
// already exists is skipped with a warning; any other failure aborts.
func (m *Materializer) linkTree(ctx context.Context, src, dst string) (linkStats, error) {
	var stats linkStats

	if err := os.MkdirAll(dst, 0755); err != nil {
		return stats, errors.Wrap(errors.ErrCodeFilesystem, err, "mkdir %s", dst)
	}

	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		m.logger.Debugf("Artifact directory %s not found, nothing to link", src)
		return stats, nil
	}
	if err != nil {
		return stats, errors.Wrap(errors.ErrCodeFilesystem, err, "stat %s", src)
	}
	if !info.IsDir() {
		return stats, errors.New(errors.ErrCodeFilesystem, "artifact path %s is not a directory", src)
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(errors.ErrCodeFilesystem, err, "walk %s", path)
		}
		if path == src {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "relative path of %s", path)
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Wrap(errors.ErrCodeFilesystem, err, "mkdir %s", target)
			}
			return nil
		}

		if _, err := os.Lstat(target); err == nil {
			m.skip(ctx, &stats, target)
			return nil
		}
		if err := os.Link(path, target); err != nil {
			if stderrors.Is(err, fs.ErrExist) {
				m.skip(ctx, &stats, target)
				return nil
			}
			return errors.Wrap(errors.ErrCodeFilesystem, err, "link %s to %s", path, target)
		}
		stats.linked++
		return nil
	})
	return stats, err
}

func (m *Materializer) skip(ctx context.Context, stats *linkStats, target string) {
	conflict := errors.New(errors.ErrCodeDestinationConflict, "dst file: %s already exists", target)
	m.logger.Warn(errors.UserMessage(conflict))
	m.hooks.OnLinkSkipped(ctx, target)
	stats.skipped = append(stats.skipped, target)
}
