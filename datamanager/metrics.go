package datamanager

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks query execution. All methods are nil-safe so the manager
// works without a registry.
type Metrics struct {
	queriesTotal  *prometheus.CounterVec
	queryErrors   *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
}

func newMetrics(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "semquery_queries_total",
			Help: "Total queries executed, by source kind and query form",
		}, []string{"source", "form"}),
		queryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "semquery_query_errors_total",
			Help: "Total failed queries, by source kind and query form",
		}, []string{"source", "form"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "semquery_query_duration_seconds",
			Help:    "Query execution duration, by source kind and query form",
			Buckets: prometheus.DefBuckets,
		}, []string{"source", "form"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "semquery_endpoint_cache_hits_total",
			Help: "Endpoint result cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "semquery_endpoint_cache_misses_total",
			Help: "Endpoint result cache misses",
		}),
	}

	collectors := []prometheus.Collector{
		m.queriesTotal, m.queryErrors, m.queryDuration, m.cacheHits, m.cacheMisses,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeQuery(source, form string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(source, form).Inc()
	m.queryDuration.WithLabelValues(source, form).Observe(time.Since(start).Seconds())
	if err != nil {
		m.queryErrors.WithLabelValues(source, form).Inc()
	}
}

func (m *Metrics) observeCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}
