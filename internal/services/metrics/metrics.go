package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "machine_monitor"

// Metrics - коллекторы Prometheus. Собственный реестр позволяет создавать экземпляры в тестах.
type Metrics struct {
	registry *prometheus.Registry

	pollDuration      prometheus.Histogram
	pollFailures      *prometheus.CounterVec
	transitions       *prometheus.CounterVec
	machineStates     *prometheus.GaugeVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	broadcastFailures *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_pass_duration_seconds",
			Help:      "Duration of a full fleet poll pass.",
			Buckets:   []float64{.05, .1, .25, .5, .75, 1, 2.5, 5},
		}),
		pollFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_failures_total",
			Help:      "Per-machine poll failures by kind.",
		}, []string{"kind"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Opened status intervals by new state.",
		}, []string{"state"}),
		machineStates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "machines",
			Help:      "Machines per state after the last poll pass.",
		}, []string{"state"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_hits_total",
			Help:      "Snapshot cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_misses_total",
			Help:      "Snapshot cache misses.",
		}),
		broadcastFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_failures_total",
			Help:      "Failed fleet snapshot deliveries by sink.",
		}, []string{"sink"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request durations by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.pollDuration,
		m.pollFailures,
		m.transitions,
		m.machineStates,
		m.cacheHits,
		m.cacheMisses,
		m.broadcastFailures,
		m.httpRequests,
		m.httpDuration,
	)

	for _, s := range models.AllStates {
		if s != models.StateUnknown {
			m.machineStates.WithLabelValues(string(s)).Set(0)
		}
	}

	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) CacheHit()  { m.cacheHits.Inc() }
func (m *Metrics) CacheMiss() { m.cacheMisses.Inc() }

func (m *Metrics) Transition(_, to models.State) {
	m.transitions.WithLabelValues(string(to)).Inc()
}

func (m *Metrics) ObservePass(d time.Duration) {
	m.pollDuration.Observe(d.Seconds())
}

func (m *Metrics) PollFailure(kind models.FailureKind) {
	m.pollFailures.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) BroadcastFailure(sink string) {
	m.broadcastFailures.WithLabelValues(sink).Inc()
}

// SetFleet обновляет распределение станков по состояниям
func (m *Metrics) SetFleet(snapshot models.FleetSnapshot) {
	counts := make(map[models.State]int)
	for _, s := range snapshot.Machines {
		counts[s.State]++
	}
	for _, s := range models.AllStates {
		if s != models.StateUnknown {
			m.machineStates.WithLabelValues(string(s)).Set(float64(counts[s]))
		}
	}
}

func (m *Metrics) ObserveHTTP(route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
