package app

import (
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics() returned nil")
	}

	snapshot := m.Snapshot()
	if snapshot.LoadCount != 0 || snapshot.AvgLoadNs != 0 {
		t.Errorf("expected empty snapshot, got %+v", snapshot)
	}
}

func TestMetrics_RecordLoad(t *testing.T) {
	m := NewMetrics()

	m.RecordLoad(10*time.Millisecond, 3)
	m.RecordLoad(20*time.Millisecond, 5)
	m.RecordLoad(6*time.Millisecond, 0)

	snapshot := m.Snapshot()
	if snapshot.LoadCount != 3 {
		t.Errorf("expected 3 loads, got %d", snapshot.LoadCount)
	}
	if snapshot.EntryCount != 8 {
		t.Errorf("expected 8 entries, got %d", snapshot.EntryCount)
	}
	if snapshot.AvgLoadNs != int64(12*time.Millisecond) {
		t.Errorf("expected avg 12ms, got %d ns", snapshot.AvgLoadNs)
	}
	if snapshot.AvgLoadMs() != 12 {
		t.Errorf("expected AvgLoadMs 12, got %f", snapshot.AvgLoadMs())
	}
	if snapshot.MaxLoadNs != int64(20*time.Millisecond) {
		t.Errorf("expected max 20ms, got %d ns", snapshot.MaxLoadNs)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordLoadError()
	m.RecordReload()
	m.RecordReload()
	m.RecordDiagnostic()

	snapshot := m.Snapshot()
	if snapshot.LoadErrors != 1 {
		t.Errorf("expected 1 load error, got %d", snapshot.LoadErrors)
	}
	if snapshot.ReloadCount != 2 {
		t.Errorf("expected 2 reloads, got %d", snapshot.ReloadCount)
	}
	if snapshot.Diagnostics != 1 {
		t.Errorf("expected 1 diagnostic, got %d", snapshot.Diagnostics)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.RecordLoad(time.Duration(n)*time.Millisecond, 1)
		}(i)
	}
	wg.Wait()

	snapshot := m.Snapshot()
	if snapshot.LoadCount != 10 {
		t.Errorf("expected 10 loads, got %d", snapshot.LoadCount)
	}
	if snapshot.MaxLoadNs != int64(10*time.Millisecond) {
		t.Errorf("expected max 10ms, got %d ns", snapshot.MaxLoadNs)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordLoad(time.Millisecond, 4)
	m.RecordLoadError()

	m.Reset()

	snapshot := m.Snapshot()
	if snapshot.LoadCount != 0 || snapshot.LoadErrors != 0 || snapshot.EntryCount != 0 || snapshot.MaxLoadNs != 0 {
		t.Errorf("expected zeroed snapshot after Reset, got %+v", snapshot)
	}
}

func TestMetricsSnapshot_ErrorRate(t *testing.T) {
	tests := []struct {
		name     string
		snapshot MetricsSnapshot
		expected float64
	}{
		{"no loads", MetricsSnapshot{}, 0},
		{"no errors", MetricsSnapshot{LoadCount: 4}, 0},
		{"quarter", MetricsSnapshot{LoadCount: 3, LoadErrors: 1}, 25},
		{"all errors", MetricsSnapshot{LoadErrors: 2}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snapshot.ErrorRate(); got != tt.expected {
				t.Errorf("ErrorRate() = %f, expected %f", got, tt.expected)
			}
		})
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(5 * time.Millisecond)

	elapsed := timer.Stop()
	if elapsed < 5*time.Millisecond {
		t.Errorf("expected at least 5ms elapsed, got %v", elapsed)
	}
	if timer.Elapsed() >= elapsed {
		t.Errorf("expected Stop to reset the timer")
	}
}
