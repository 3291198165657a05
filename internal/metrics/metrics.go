// Package metrics holds the prometheus collectors of the self-hosted store.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/kianlavi/onlyfan/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "onlyfan"

// Write outcomes recorded by ObserveWrite.
const (
	WriteCreated  = "created"
	WriteUpdated  = "updated"
	WriteConflict = "conflict"
	WriteExists   = "exists"
	WriteRejected = "rejected"
)

// Metrics owns a private registry so tests can create any number of them.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requests        *prometheus.CounterVec
	writes          *prometheus.CounterVec
}

// New registers the runtime, build and request collectors. db, when not
// nil, adds the connection pool statistics of the SQL backend.
func New(build models.AppBuildInfo, db *sql.DB, dbName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "http",
			Name:      "request_duration_seconds",
			Help:      "A histogram of duration, in seconds, handling HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"method", "route", "status"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "http",
			Name:      "requests_total",
			Help:      "The number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_writes_total",
			Help:      "Conditional document writes by outcome.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.requestDuration,
		m.requests,
		m.writes,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "build_info",
			Help: "A metric with a constant '1' value labeled by version, commit, and date from which onlyfan was built",
			ConstLabels: prometheus.Labels{
				"version": build.BuildVersion(),
				"commit":  build.BuildCommit(),
				"date":    build.BuildDate(),
			},
		}, func() float64 { return 1 }),
	)

	if db != nil {
		m.registry.MustRegister(collectors.NewDBStatsCollector(db, dbName))
	}

	return m
}

// ObserveRequest records one handled request. route is the matched route
// pattern, never the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	m.requestDuration.With(labels).Observe(elapsed.Seconds())
	m.requests.With(labels).Inc()
}

// ObserveWrite counts a document write by outcome.
func (m *Metrics) ObserveWrite(result string) {
	m.writes.WithLabelValues(result).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(m.registry, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
