package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/golf-tournament/internal/platform/cache"
)

const metricsNamespace = "golf_tournament"

// Metrics owns a private Prometheus registry. A nil *Metrics records nothing.
type Metrics struct {
	registry              *prometheus.Registry
	httpRequests          *prometheus.CounterVec
	httpDuration          *prometheus.HistogramVec
	recalculations        *prometheus.CounterVec
	recalculationDuration prometheus.Histogram
	failedRows            prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "standings",
			Name:      "recalculations_total",
			Help:      "Standings recalculations by outcome.",
		}, []string{"status"}),
		recalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "standings",
			Name:      "recalculation_duration_seconds",
			Help:      "Wall time of one tournament recalculation.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		failedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "standings",
			Name:      "failed_rows_total",
			Help:      "Standing rows whose upsert failed.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.recalculations,
		m.recalculationDuration,
		m.failedRows,
	)
	return m
}

// Registry is exposed for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveRecalculation satisfies usecase.RecalculationObserver.
func (m *Metrics) ObserveRecalculation(status string, failedRows int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.recalculations.WithLabelValues(status).Inc()
	m.recalculationDuration.Observe(elapsed.Seconds())
	if failedRows > 0 {
		m.failedRows.Add(float64(failedRows))
	}
}

// CacheStatsSource is satisfied by *cache.Store.
type CacheStatsSource interface {
	Stats() cache.Stats
}

// RegisterCache exposes hit, miss and load counters of one named cache.
func (m *Metrics) RegisterCache(name string, src CacheStatsSource) error {
	if m == nil || src == nil {
		return nil
	}
	counter := func(metric, help string, read func(cache.Stats) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "cache",
			Name:        metric,
			Help:        help,
			ConstLabels: prometheus.Labels{"cache": name},
		}, func() float64 { return float64(read(src.Stats())) })
	}
	for _, c := range []prometheus.Collector{
		counter("hits_total", "Cache lookups served from memory.", func(s cache.Stats) uint64 { return s.Hits }),
		counter("misses_total", "Cache lookups that found nothing fresh.", func(s cache.Stats) uint64 { return s.Misses }),
		counter("loads_total", "Loader calls made on a miss.", func(s cache.Stats) uint64 { return s.Loads }),
	} {
		if err := m.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
