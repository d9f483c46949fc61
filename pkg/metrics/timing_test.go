package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestTimingMetricRecord(t *testing.T) {
	m := newTimingMetric("test_op")
	m.Record(10 * time.Millisecond)
	m.Record(30 * time.Millisecond)
	m.Record(20 * time.Millisecond)

	stats := m.Stats()
	if stats.Count != 3 {
		t.Fatalf("Count = %d", stats.Count)
	}
	if stats.MinMs != 10 || stats.MaxMs != 30 {
		t.Fatalf("min/max = %v/%v", stats.MinMs, stats.MaxMs)
	}
	if stats.AvgMs != 20 {
		t.Fatalf("avg = %v", stats.AvgMs)
	}
}

func TestTimingMetricReset(t *testing.T) {
	m := newTimingMetric("test_op")
	m.Record(time.Millisecond)
	m.Reset()

	if m.Count() != 0 || m.AvgNs() != 0 {
		t.Fatal("reset did not clear")
	}
}

func TestTimerRecordsElapsed(t *testing.T) {
	m := newTimingMetric("test_op")

	done := Timer(m)
	time.Sleep(5 * time.Millisecond)
	done()

	if m.Count() != 1 {
		t.Fatalf("Count = %d", m.Count())
	}
	if m.AvgNs() < int64(5*time.Millisecond) {
		t.Fatalf("recorded %dns, want at least 5ms", m.AvgNs())
	}
}

func TestTimerNilMetric(t *testing.T) {
	Timer(nil)() // must not panic
}

func TestDisabledCollection(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := newTimingMetric("test_op")
	m.Record(time.Millisecond)
	Timer(m)()

	if m.Count() != 0 {
		t.Fatal("disabled metrics still recorded")
	}
}

func TestConcurrentRecord(t *testing.T) {
	m := newTimingMetric("test_op")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Record(time.Microsecond)
			}
		}()
	}
	wg.Wait()

	if m.Count() != 800 {
		t.Fatalf("Count = %d, want 800", m.Count())
	}
}

func TestAllTimingStatsSkipsUnrecorded(t *testing.T) {
	ResetAll()
	SortApply.Record(time.Millisecond)
	defer ResetAll()

	stats := AllTimingStats()
	if len(stats) != 1 || stats[0].Name != "sort_apply" {
		t.Fatalf("stats = %+v", stats)
	}
}
