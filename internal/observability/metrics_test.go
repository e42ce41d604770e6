package observability

import (
	"testing"
	"time"
)

func TestMetricsRecordRequest(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/tickets", "POST", 201, 20*time.Millisecond)
	m.RecordRequest("/tickets", "POST", 201, 30*time.Millisecond)
	m.RecordRequest("/tickets/track", "GET", 200, 5*time.Millisecond)

	if got := m.RequestTotal("/tickets", "POST", 201); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
	if got := m.RequestDurationTotal("/tickets", "POST", 201); got != 50*time.Millisecond {
		t.Fatalf("expected 50ms accumulated, got %v", got)
	}
	if got := m.RequestDurationTotal("/tickets/track", "GET", 200); got != 5*time.Millisecond {
		t.Fatalf("expected 5ms accumulated, got %v", got)
	}
}

func TestMetricsUnrecordedTriple(t *testing.T) {
	m := NewMetrics()
	if got := m.RequestTotal("/missing", "GET", 404); got != 0 {
		t.Fatalf("expected zero count, got %d", got)
	}
	if got := m.RequestDurationTotal("/missing", "GET", 404); got != 0 {
		t.Fatalf("expected zero duration, got %v", got)
	}
}
