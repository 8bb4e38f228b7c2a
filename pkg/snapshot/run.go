package snapshot

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/reduce"
)

// DirName returns the destination directory name of plan for the source
// snapshot src: the source base name, suffixed with the two-digit plan index
// in bulk mode. src should be absolute; the base name of "." is ".".
func DirName(src string, plan reduce.Plan) string {
	base := filepath.Base(filepath.Clean(src))
	if !plan.Suffixed() {
		return base
	}
	return fmt.Sprintf("%s_%02d", base, plan.Index)
}

// Run materializes every plan under outBase, one after another in the order
// given. Plans are expected in index order, as returned by [reduce.Reduce].
//
// Without BestEffort the first failure stops the run and is returned along
// with the results completed so far. With BestEffort every plan is
// attempted and all failures are returned joined. Context cancellation is
// checked between derivatives and always stops the run.
//
// A relative src is resolved against the working directory first, so that
// derivatives are named after the snapshot directory and not after ".".
func (m *Materializer) Run(ctx context.Context, src, outBase string, plans []reduce.Plan) ([]*Result, error) {
	results := make([]*Result, 0, len(plans))
	var failures []error

	src, err := filepath.Abs(src)
	if err != nil {
		return results, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve source snapshot")
	}

	m.logger.Debug("input", "snapshot_dir", src, "derivatives", len(plans))

	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		name := DirName(src, plan)
		if err := errors.ValidateSnapshotName(name); err != nil {
			return results, err
		}

		res, err := m.Materialize(ctx, Request{
			Source:      src,
			Destination: filepath.Join(outBase, name),
			Index:       plan.Index,
			Lost:        plan.Lost,
			Found:       plan.Found,
			Description: plan.Description,
		})
		if err != nil {
			if !m.opts.BestEffort || stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
				return results, err
			}
			m.logger.Error("Derivative failed", "index", plan.Index, "err", err)
			failures = append(failures, err)
			continue
		}
		m.logger.Info(plan.Description, "snapshot", res.Path)
		results = append(results, res)
	}

	return results, stderrors.Join(failures...)
}
