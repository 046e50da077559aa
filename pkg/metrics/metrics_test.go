package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestEventTypeStrings(t *testing.T) {
	if len(EventTypeStrings) != int(RiotTransient)+1 {
		t.Fatalf("expected %d event names, got %d", int(RiotTransient)+1, len(EventTypeStrings))
	}
	if RegistrationCompleted.String() != "registration_completed" {
		t.Errorf("unexpected name %s", RegistrationCompleted.String())
	}
	if EventType(-1).String() != "unknown" {
		t.Error("out of range event should be unknown")
	}
}

func TestCounter(t *testing.T) {
	c := NewCounter()
	ctx := context.Background()
	c.RecordEvent(ctx, ProfileView)
	c.RecordEvent(ctx, ProfileView)
	c.RecordEvent(ctx, RiotRequest)

	if n, _ := c.EventCount(ctx, ProfileView); n != 2 {
		t.Errorf("expected 2 profile views, got %d", n)
	}
	if n, _ := c.EventCount(ctx, RegistrationStarted); n != 0 {
		t.Errorf("expected 0 registrations, got %d", n)
	}
}

type failingSource struct {
	fail EventType
}

func (f failingSource) EventCount(_ context.Context, e EventType) (int64, error) {
	if e == f.fail {
		return 0, errors.New("boom")
	}
	return int64(e), nil
}

func TestCollectorSkipsFailedReads(t *testing.T) {
	col := NewCollector(failingSource{fail: RiotRequest}, "node", nil)
	ch := make(chan prometheus.Metric, len(EventTypeStrings))
	col.Collect(ch)
	close(ch)

	count := 0
	for range ch {
		count++
	}
	if count != len(EventTypeStrings)-1 {
		t.Errorf("expected %d metrics, got %d", len(EventTypeStrings)-1, count)
	}
}
