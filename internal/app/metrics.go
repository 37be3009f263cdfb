package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks translator loading statistics.
type Metrics struct {
	loadCount   atomic.Uint64
	loadErrors  atomic.Uint64
	loadTotalNs atomic.Int64
	loadMaxNs   atomic.Int64
	entryCount  atomic.Uint64
	reloadCount atomic.Uint64
	diagCount   atomic.Uint64

	startTime atomic.Int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.startTime.Store(time.Now().UnixNano())
	return m
}

// RecordLoad records a translator load that produced entries entries.
func (m *Metrics) RecordLoad(duration time.Duration, entries int) {
	ns := duration.Nanoseconds()

	m.loadCount.Add(1)
	m.loadTotalNs.Add(ns)
	m.entryCount.Add(uint64(entries))

	for {
		old := m.loadMaxNs.Load()
		if ns <= old || m.loadMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordLoadError records a failed translator load.
func (m *Metrics) RecordLoadError() {
	m.loadErrors.Add(1)
}

// RecordReload records a reload triggered by a file change.
func (m *Metrics) RecordReload() {
	m.reloadCount.Add(1)
}

// RecordDiagnostic records a reader diagnostic.
func (m *Metrics) RecordDiagnostic() {
	m.diagCount.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	loadCount := m.loadCount.Load()

	var avgLoadNs int64
	if loadCount > 0 {
		avgLoadNs = m.loadTotalNs.Load() / int64(loadCount)
	}

	return MetricsSnapshot{
		Uptime:      time.Since(time.Unix(0, m.startTime.Load())),
		LoadCount:   loadCount,
		LoadErrors:  m.loadErrors.Load(),
		AvgLoadNs:   avgLoadNs,
		MaxLoadNs:   m.loadMaxNs.Load(),
		EntryCount:  m.entryCount.Load(),
		ReloadCount: m.reloadCount.Load(),
		Diagnostics: m.diagCount.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.loadCount.Store(0)
	m.loadErrors.Store(0)
	m.loadTotalNs.Store(0)
	m.loadMaxNs.Store(0)
	m.entryCount.Store(0)
	m.reloadCount.Store(0)
	m.diagCount.Store(0)
	m.startTime.Store(time.Now().UnixNano())
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime      time.Duration
	LoadCount   uint64
	LoadErrors  uint64
	AvgLoadNs   int64
	MaxLoadNs   int64
	EntryCount  uint64
	ReloadCount uint64
	Diagnostics uint64
}

// AvgLoadMs returns the average load time in milliseconds.
func (s MetricsSnapshot) AvgLoadMs() float64 {
	return float64(s.AvgLoadNs) / 1e6
}

// ErrorRate returns the percentage of loads that failed.
func (s MetricsSnapshot) ErrorRate() float64 {
	total := s.LoadCount + s.LoadErrors
	if total == 0 {
		return 0
	}
	return float64(s.LoadErrors) / float64(total) * 100
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop returns the elapsed time and resets the timer.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	t.start = time.Now()
	return elapsed
}
