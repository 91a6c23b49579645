package actionlog

import (
	"context"
	"testing"
)

func TestProcessStats_SnapshotWithoutMetricsBackend(t *testing.T) {
	s := NewProcessStats(nil)
	ctx := context.Background()

	s.RecordDrop(ctx)
	s.RecordDrop(ctx)
	s.RecordForwardFailure(ctx)
	s.RecordFilterPanic(ctx)
	s.RecordFilterPanic(ctx)
	s.RecordFilterPanic(ctx)

	got := s.Snapshot()
	want := ProcessStatsSnapshot{Dropped: 2, ForwardFailures: 1, FilterPanics: 3}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
