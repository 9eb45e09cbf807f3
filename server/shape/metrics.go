package shape

import (
	"sync"
)

// Metrics counts geometry cache activity. A nil *Metrics is valid and counts
// nothing.
type Metrics struct {
	mu sync.Mutex

	hits      uint64
	misses    uint64
	evictions uint64
	missing   uint64
}

// MetricsSnapshot is a copy of the counters of a Metrics at one point in time.
type MetricsSnapshot struct {
	Hits, Misses, Evictions, MissingAssets uint64
}

// NewMetrics creates an empty metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncHits increments the cache hit counter.
func (m *Metrics) IncHits() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
}

// IncMisses increments the cache miss counter.
func (m *Metrics) IncMisses() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}

// IncEvictions increments the counter of entries evicted from a full cache.
func (m *Metrics) IncEvictions() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.evictions++
	m.mu.Unlock()
}

// IncMissing increments the counter of shape assets that could not be found.
func (m *Metrics) IncMissing() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.missing++
	m.mu.Unlock()
}

// Snapshot returns the current values of all counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{Hits: m.hits, Misses: m.misses, Evictions: m.evictions, MissingAssets: m.missing}
}
