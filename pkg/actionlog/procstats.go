package actionlog

import (
	"context"
	"sync/atomic"

	"github.com/JailtonJunior94/actionlog/pkg/observability"
)

// ProcessStats accumulates process-wide counters that don't belong to any
// single action: queue drops, forwarder failures, and panics recovered
// from a LogFilter (§5 "process-wide stats"). These are exported as
// observability.Metrics instruments rather than folded into any one
// ActionDocument, since they describe the health of the logging pipeline
// itself, not of the actions flowing through it.
type ProcessStats struct {
	dropped         atomic.Int64
	forwardFailures atomic.Int64
	filterPanics    atomic.Int64

	droppedCounter observability.Counter
	failureCounter observability.Counter
	panicCounter   observability.Counter
}

// NewProcessStats wires counters into metrics. metrics may be nil, in
// which case counters are tracked in-process only and Snapshot is the
// sole way to read them.
func NewProcessStats(metrics observability.Metrics) *ProcessStats {
	s := &ProcessStats{}
	if metrics != nil {
		s.droppedCounter = metrics.Counter(
			"actionlog_forward_queue_dropped_total",
			"Records dropped from the forward queue because it was full",
			"1",
		)
		s.failureCounter = metrics.Counter(
			"actionlog_forward_failures_total",
			"Records that failed to forward to the collector topic",
			"1",
		)
		s.panicCounter = metrics.Counter(
			"actionlog_filter_panics_total",
			"Panics recovered while applying a LogFilter",
			"1",
		)
	}
	return s
}

// RecordDrop increments the dropped-record counter.
func (s *ProcessStats) RecordDrop(ctx context.Context) {
	s.dropped.Add(1)
	if s.droppedCounter != nil {
		s.droppedCounter.Increment(ctx)
	}
}

// RecordForwardFailure increments the forward-failure counter.
func (s *ProcessStats) RecordForwardFailure(ctx context.Context) {
	s.forwardFailures.Add(1)
	if s.failureCounter != nil {
		s.failureCounter.Increment(ctx)
	}
}

// RecordFilterPanic increments the recovered-filter-panic counter.
func (s *ProcessStats) RecordFilterPanic(ctx context.Context) {
	s.filterPanics.Add(1)
	if s.panicCounter != nil {
		s.panicCounter.Increment(ctx)
	}
}

// ProcessStatsSnapshot is a point-in-time read of ProcessStats.
type ProcessStatsSnapshot struct {
	Dropped         int64
	ForwardFailures int64
	FilterPanics    int64
}

// Snapshot returns the current counter values.
func (s *ProcessStats) Snapshot() ProcessStatsSnapshot {
	return ProcessStatsSnapshot{
		Dropped:         s.dropped.Load(),
		ForwardFailures: s.forwardFailures.Load(),
		FilterPanics:    s.filterPanics.Load(),
	}
}
