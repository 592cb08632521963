package webgate

import (
	"sync"
	"testing"
)

func TestMetricsIncAndValue(t *testing.T) {
	var m Metrics

	m.Inc(MetricDecisionPass)
	m.Inc(MetricDecisionPass)
	m.Inc(MetricLogout)

	if got := m.Value(MetricDecisionPass); got != 2 {
		t.Fatalf("Value(MetricDecisionPass) = %d, want 2", got)
	}
	if got := m.Value(MetricLogout); got != 1 {
		t.Fatalf("Value(MetricLogout) = %d, want 1", got)
	}
	if got := m.Value(MetricTokenExpired); got != 0 {
		t.Fatalf("Value(MetricTokenExpired) = %d, want 0", got)
	}
}

func TestMetricsUnknownID(t *testing.T) {
	var m Metrics

	m.Inc(metricIDCount + 5)
	if got := m.Value(metricIDCount + 5); got != 0 {
		t.Fatalf("unknown ID must read zero, got %d", got)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics

	m.Inc(MetricDecisionPass)
	if got := m.Value(MetricDecisionPass); got != 0 {
		t.Fatalf("nil receiver must read zero, got %d", got)
	}
	if snap := m.Snapshot(); len(snap.Counters) != 0 {
		t.Fatalf("nil receiver snapshot must be empty, got %v", snap.Counters)
	}
}

func TestMetricsSnapshotIsCopy(t *testing.T) {
	var m Metrics
	m.Inc(MetricLoginIssued)

	snap := m.Snapshot()
	m.Inc(MetricLoginIssued)

	if snap.Counters[MetricLoginIssued] != 1 {
		t.Fatalf("snapshot mutated after the fact: %v", snap.Counters)
	}
	if len(snap.Counters) != int(metricIDCount) {
		t.Fatalf("snapshot must cover all counters, got %d", len(snap.Counters))
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	var m Metrics
	var wg sync.WaitGroup

	const workers = 8
	const perWorker = 1000

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricDecisionPass)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricDecisionPass); got != workers*perWorker {
		t.Fatalf("Value = %d, want %d", got, workers*perWorker)
	}
}
