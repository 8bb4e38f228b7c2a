package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SnapshotMetrics records materializer events as Prometheus metrics. It
// implements SnapshotHooks, so a batch run can register it and write the
// result for the node_exporter textfile collector with WriteTextfile.
type SnapshotMetrics struct {
	gatherer prometheus.Gatherer

	Derivatives *prometheus.CounterVec
	Durations   prometheus.Histogram
	Linked      prometheus.Counter
	Skipped     prometheus.Counter

	LastRunSuccess   prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
}

// NewSnapshotMetrics registers the snapshot metrics against reg, which
// defaults to a fresh registry when nil.
func NewSnapshotMetrics(reg *prometheus.Registry) (*SnapshotMetrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &SnapshotMetrics{
		gatherer: reg,
		Derivatives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkdown_derivatives_total",
			Help: "Derivative snapshots built, labeled by result (ok or error).",
		}, []string{"result"}),
		Durations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "linkdown_derivative_duration_seconds",
			Help:    "Time to build one derivative snapshot.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		Linked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkdown_artifacts_linked_total",
			Help: "Artifact files hard-linked into derivatives.",
		}),
		Skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkdown_artifacts_skipped_total",
			Help: "Artifact files skipped because the destination already existed.",
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "linkdown_last_run_success",
			Help: "1 if the last run completed without error, 0 otherwise.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "linkdown_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.Derivatives, m.Durations, m.Linked, m.Skipped, m.LastRunSuccess, m.LastRunTimestamp,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

func (m *SnapshotMetrics) OnDerivativeStart(context.Context, int, string) {}

func (m *SnapshotMetrics) OnDerivativeComplete(_ context.Context, _ int, _ string, linked int, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Derivatives.WithLabelValues(result).Inc()
	m.Durations.Observe(duration.Seconds())
	m.Linked.Add(float64(linked))
}

func (m *SnapshotMetrics) OnLinkSkipped(context.Context, string) {
	m.Skipped.Inc()
}

// RecordRun stamps the outcome of a whole run.
func (m *SnapshotMetrics) RecordRun(err error, at time.Time) {
	if err != nil {
		m.LastRunSuccess.Set(0)
	} else {
		m.LastRunSuccess.Set(1)
	}
	m.LastRunTimestamp.Set(float64(at.Unix()))
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (m *SnapshotMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}

var _ SnapshotHooks = (*SnapshotMetrics)(nil)
