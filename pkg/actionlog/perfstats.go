package actionlog

import "sync"

// PerfEntry is the accumulated counters for one resource (e.g. "db",
// "http", "cache", "kafka", "elasticsearch").
type PerfEntry struct {
	Count            int64
	TotalElapsedNanos int64
	ReadEntries      int64
	WriteEntries     int64
}

// hotResources is preallocated in PerformanceStats to avoid map churn for
// the handful of resource kinds almost every action touches.
var hotResources = []string{"db", "http", "cache", "kafka", "elasticsearch"}

// PerformanceStats aggregates per-resource counters for one action. It is
// single-writer: the owning thread is the only caller until the action
// ends, at which point it is read during serialization.
type PerformanceStats struct {
	mu      sync.Mutex
	entries map[string]*PerfEntry
}

// NewPerformanceStats creates an empty stats accumulator with slots
// preallocated for known hot resources.
func NewPerformanceStats() *PerformanceStats {
	entries := make(map[string]*PerfEntry, len(hotResources))
	return &PerformanceStats{entries: entries}
}

// Track records one sample for resource and returns the resource's call
// count after this sample, so the caller can decide whether to emit a
// detailed log line (typically only when the return value is 1).
func (p *PerformanceStats) Track(resource string, elapsedNanos, readEntries, writeEntries int64) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[resource]
	if !ok {
		entry = &PerfEntry{}
		p.entries[resource] = entry
	}

	entry.Count++
	entry.TotalElapsedNanos += elapsedNanos
	entry.ReadEntries += readEntries
	entry.WriteEntries += writeEntries
	return entry.Count
}

// Snapshot returns a copy of the current per-resource entries, safe to
// retain after the action ends.
func (p *PerformanceStats) Snapshot() map[string]PerfEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]PerfEntry, len(p.entries))
	for name, entry := range p.entries {
		out[name] = *entry
	}
	return out
}
