package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkdown/pkg/observability"
)

// logHooks reports materializer events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnDerivativeStart(_ context.Context, index int, dst string) {
	h.logger.Debug("Building snapshot", "index", index, "path", dst)
}

func (h logHooks) OnDerivativeComplete(_ context.Context, index int, dst string, linked int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Snapshot failed", "index", index, "path", dst, "err", err)
		return
	}
	h.logger.Debug("Snapshot built", "index", index, "linked", linked, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnLinkSkipped(_ context.Context, dst string) {
	h.logger.Debug("Link skipped", "path", dst)
}

var _ observability.SnapshotHooks = logHooks{}

// runHooks returns the hooks of one make run: debug logging to logger and,
// when metrics is not nil, the Prometheus collectors.
func runHooks(logger *log.Logger, metrics *observability.SnapshotMetrics) observability.SnapshotHooks {
	hooks := observability.MultiSnapshotHooks{logHooks{logger: logger}}
	if metrics != nil {
		hooks = append(hooks, metrics)
	}
	return hooks
}
