package telemetry

import (
	"context"
	"fmt"

	"github.com/erp/invoicing/internal/application/state"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names recorded for state commits.
const (
	MetricStateCommits         = "invoicing.state.commits"
	MetricStatePersistFailures = "invoicing.state.persist_failures"
)

// StateMetrics counts committed deltas per collection and failed snapshot
// writes. It plugs into the store via state.WithCommitObserver.
type StateMetrics struct {
	commits  metric.Int64Counter
	failures metric.Int64Counter
}

var _ state.CommitObserver = (*StateMetrics)(nil)

// NewStateMetrics registers the instruments on meter.
func NewStateMetrics(meter metric.Meter) (*StateMetrics, error) {
	commits, err := meter.Int64Counter(MetricStateCommits,
		metric.WithDescription("Collections replaced by committed state changes"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricStateCommits, err)
	}

	failures, err := meter.Int64Counter(MetricStatePersistFailures,
		metric.WithDescription("State snapshots that could not be written"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricStatePersistFailures, err)
	}

	return &StateMetrics{commits: commits, failures: failures}, nil
}

// ObserveCommit implements state.CommitObserver.
func (m *StateMetrics) ObserveCommit(ctx context.Context, changed []string, persistErr error) {
	for _, collection := range changed {
		m.commits.Add(ctx, 1, metric.WithAttributes(attribute.String("collection", collection)))
	}
	if persistErr != nil {
		m.failures.Add(ctx, 1)
	}
}
