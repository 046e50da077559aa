package metrics

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type EventType int

const (
	RegistrationStarted EventType = iota
	RegistrationCompleted
	RegistrationCancelled
	RegistrationTimedOut
	RegistrationSuspended
	PersonalizationStarted
	PersonalizationCompleted
	PersonalizationCancelled
	PersonalizationTimedOut
	ProfileView
	ProfileRefresh
	RiotRequest
	RiotNotFound
	RiotTransient
)

var EventTypeStrings = []string{
	"registration_started",
	"registration_completed",
	"registration_cancelled",
	"registration_timed_out",
	"registration_suspended",
	"personalization_started",
	"personalization_completed",
	"personalization_cancelled",
	"personalization_timed_out",
	"profile_view",
	"profile_refresh",
	"riot_request",
	"riot_not_found",
	"riot_transient",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(EventTypeStrings) {
		return "unknown"
	}
	return EventTypeStrings[e]
}

// Recorder counts events. Implementations must be safe for concurrent use and
// never fail the caller.
type Recorder interface {
	RecordEvent(ctx context.Context, event EventType)
}

// Source reports accumulated counts for the collector.
type Source interface {
	EventCount(ctx context.Context, event EventType) (int64, error)
}

type Nop struct{}

func (Nop) RecordEvent(context.Context, EventType) {}

// Counter keeps counts in process memory.
type Counter struct {
	lock   sync.Mutex
	counts map[EventType]int64
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[EventType]int64)}
}

func (c *Counter) RecordEvent(_ context.Context, event EventType) {
	c.lock.Lock()
	c.counts[event]++
	c.lock.Unlock()
}

func (c *Counter) EventCount(_ context.Context, event EventType) (int64, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.counts[event], nil
}

type Collector struct {
	counterDesc *prometheus.Desc
	source      Source
	nodeID      string
	log         *zap.Logger
}

func NewCollector(source Source, nodeID string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		counterDesc: prometheus.NewDesc("aurora_events_by_node_and_type",
			"Number of bot events, differentiated by node/type", []string{"nodeID", "type"}, nil),
		source: source,
		nodeID: nodeID,
		log:    logger,
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.counterDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for i, str := range EventTypeStrings {
		num, err := c.source.EventCount(context.Background(), EventType(i))
		if err != nil {
			c.log.Warn("failed to read event count", zap.String("type", str), zap.Error(err))
			continue
		}
		ch <- prometheus.MustNewConstMetric(
			c.counterDesc,
			prometheus.CounterValue,
			float64(num),
			c.nodeID,
			str,
		)
	}
}

func PrometheusMetricsServer(source Source, nodeID, port string, logger *zap.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewCollector(source, nodeID, logger))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return http.ListenAndServe(":"+port, mux)
}
