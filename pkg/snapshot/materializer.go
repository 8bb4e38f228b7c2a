package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/observability"
	"github.com/matzehuels/linkdown/pkg/topology"
)

// DefaultArtifactDirs are the artifact subdirectories linked into every
// derivative unless configured otherwise.
var DefaultArtifactDirs = []string{"configs", "hosts"}

// Options configures a Materializer.
type Options struct {
	// ArtifactDirs lists the subdirectories of the source snapshot whose
	// files are hard-linked into each derivative. Defaults to
	// DefaultArtifactDirs.
	ArtifactDirs []string

	// DryRun logs what would be removed and writes nothing.
	DryRun bool

	// BestEffort makes Run continue past a failed derivative and return
	// all failures together. By default Run stops at the first failure.
	BestEffort bool

	// Logger receives progress, warnings and dry-run output.
	// Defaults to log.Default().
	Logger *log.Logger

	// Hooks receives derivative and skip events.
	// Defaults to the hooks registered with observability.SetSnapshotHooks.
	Hooks observability.SnapshotHooks
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	if len(o.ArtifactDirs) == 0 {
		o.ArtifactDirs = slices.Clone(DefaultArtifactDirs)
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Hooks == nil {
		o.Hooks = observability.Snapshot()
	}
	return o
}

// Validate checks the artifact directory names.
func (o Options) Validate() error {
	for _, dir := range o.ArtifactDirs {
		if err := errors.ValidateArtifactDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// Request describes one derivative snapshot to build.
type Request struct {
	// Source is the snapshot directory to derive from. Read only.
	Source string
	// Destination is the directory to (re)create.
	Destination string
	// Index is recorded in the metadata: 1-based in bulk mode, 0 otherwise.
	Index int
	// Lost are the removed edges, recorded in the metadata.
	Lost []topology.Edge
	// Found is the reduced topology written to the destination.
	Found []topology.Edge
	// Description is recorded in the metadata.
	Description string
}

// Result summarizes one derivative.
type Result struct {
	Index    int
	Path     string
	Metadata Metadata
	Linked   int
	Skipped  []string
	DryRun   bool
}

// Materializer builds derivative snapshot directories.
// A Materializer holds no per-run state; it is safe to reuse.
type Materializer struct {
	opts   Options
	logger *log.Logger
	hooks  observability.SnapshotHooks
}

// New creates a Materializer. Zero-valued options get their defaults.
func New(opts Options) (*Materializer, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Materializer{opts: opts, logger: opts.Logger, hooks: opts.Hooks}, nil
}

// Materialize builds the derivative described by req.
//
// The destination is removed, recreated, populated with hard links of the
// source artifact directories, and given the reduced topology and a
// metadata record. In dry-run mode only the lost edges are logged.
//
// The source and destination must not contain one another: rebuilding the
// destination would otherwise delete source files.
func (m *Materializer) Materialize(ctx context.Context, req Request) (*Result, error) {
	if err := checkDisjoint(req.Source, req.Destination); err != nil {
		return nil, err
	}

	meta := NewMetadata(req.Index, req.Source, req.Destination, req.Lost, req.Description)
	res := &Result{Index: req.Index, Path: req.Destination, Metadata: meta, DryRun: m.opts.DryRun}

	m.logger.Debug("output",
		"snapshot_dir", req.Destination,
		"configs_dir", filepath.Join(req.Destination, m.opts.ArtifactDirs[0]))

	if m.opts.DryRun {
		for _, e := range req.Lost {
			m.logger.Infof("DRY_RUN: lost: %s -> %s", e.Node1, e.Node2)
		}
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	m.hooks.OnDerivativeStart(ctx, req.Index, req.Destination)

	err := m.build(ctx, req, meta, res)
	m.hooks.OnDerivativeComplete(ctx, req.Index, req.Destination, res.Linked, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *Materializer) build(ctx context.Context, req Request, meta Metadata, res *Result) error {
	if err := os.RemoveAll(req.Destination); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "remove %s", req.Destination)
	}
	if err := os.MkdirAll(req.Destination, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "mkdir %s", req.Destination)
	}

	for _, dir := range m.opts.ArtifactDirs {
		stats, err := m.linkTree(ctx, filepath.Join(req.Source, dir), filepath.Join(req.Destination, dir))
		res.Linked += stats.linked
		res.Skipped = append(res.Skipped, stats.skipped...)
		if err != nil {
			return err
		}
	}

	if err := topology.Save(req.Destination, req.Found); err != nil {
		return err
	}
	return SaveMetadata(req.Destination, meta)
}

// checkDisjoint rejects a destination equal to, inside, or containing the
// source directory.
func checkDisjoint(src, dst string) error {
	if src == "" || dst == "" {
		return errors.New(errors.ErrCodeInvalidPath, "source and destination must be set (source %q, destination %q)", src, dst)
	}
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", src)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", dst)
	}
	if within(absSrc, absDst) || within(absDst, absSrc) {
		return errors.New(errors.ErrCodeInvalidPath, "destination %s overlaps source snapshot %s", dst, src)
	}
	return nil
}

// within reports whether path is base or below it.
func within(path, base string) bool {
	if path == base {
		return true
	}
	return strings.HasPrefix(path, base+string(filepath.Separator))
}

// String describes the result for log output.
func (r *Result) String() string {
	if r.DryRun {
		return fmt.Sprintf("%s (dry run, %d lost)", r.Path, len(r.Metadata.LostEdges))
	}
	return fmt.Sprintf("%s (%d linked, %d skipped, %d lost)", r.Path, r.Linked, len(r.Skipped), len(r.Metadata.LostEdges))
}
