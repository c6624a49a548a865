// Package metrics exposes Prometheus counters for the tracker.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpggio/tracker/internal/domain/activity"
)

const namespace = "tracker"

// Metrics holds the tracker's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	activitiesCreated prometheus.Counter
	activitiesDeleted prometheus.Counter
	logEntries        *prometheus.CounterVec
	uploads           *prometheus.CounterVec
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

// New creates a Metrics with its own registry, including Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		activitiesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_created_total",
			Help:      "Activities created.",
		}),
		activitiesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_deleted_total",
			Help:      "Activities deleted.",
		}),
		logEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_entries_total",
			Help:      "Activity log entries appended, by action.",
		}, []string{"action"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Submitted files, by validation result.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.activitiesCreated,
		m.activitiesDeleted,
		m.logEntries,
		m.uploads,
		m.requests,
		m.requestDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ActivityCreated implements activity.Recorder.
func (m *Metrics) ActivityCreated() { m.activitiesCreated.Inc() }

// ActivityDeleted implements activity.Recorder.
func (m *Metrics) ActivityDeleted() { m.activitiesDeleted.Inc() }

// LogAppended implements activity.Recorder.
func (m *Metrics) LogAppended(action string) { m.logEntries.WithLabelValues(action).Inc() }

// Upload implements activity.Recorder.
func (m *Metrics) Upload(status activity.UploadStatus) {
	m.uploads.WithLabelValues(string(status)).Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
