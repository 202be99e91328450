package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rentloop"

// PrometheusRecorder exports metrics through its own registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	operations       *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	logins           *prometheus.CounterVec
	itemEvents       *prometheus.CounterVec
	rentals          *prometheus.CounterVec
}

// NewPrometheus returns a Recorder backed by a fresh registry that also
// carries the Go runtime and process collectors.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Client operations by name and outcome",
		}, []string{"operation", "outcome"}),
		operationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Client operation latency including simulated delay",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome",
		}, []string{"outcome"}),
		itemEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "item_events_total",
			Help:      "Item mutations by kind",
		}, []string{"event"}),
		rentals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rental_requests_total",
			Help:      "Rental requests by outcome",
		}, []string{"outcome"}),
	}
}

// Registry returns the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// ObserveOperation implements Recorder.
func (p *PrometheusRecorder) ObserveOperation(op, outcome string, duration time.Duration) {
	p.operations.WithLabelValues(op, outcome).Inc()
	p.operationLatency.WithLabelValues(op).Observe(duration.Seconds())
}

// ObserveHTTPRequest implements Recorder.
func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncLogin implements Recorder.
func (p *PrometheusRecorder) IncLogin(outcome string) {
	p.logins.WithLabelValues(outcome).Inc()
}

// IncItemCreated implements Recorder.
func (p *PrometheusRecorder) IncItemCreated() {
	p.itemEvents.WithLabelValues("created").Inc()
}

// IncItemUpdated implements Recorder.
func (p *PrometheusRecorder) IncItemUpdated() {
	p.itemEvents.WithLabelValues("updated").Inc()
}

// IncItemDeleted implements Recorder.
func (p *PrometheusRecorder) IncItemDeleted() {
	p.itemEvents.WithLabelValues("deleted").Inc()
}

// IncRentalRequested implements Recorder.
func (p *PrometheusRecorder) IncRentalRequested(outcome string) {
	p.rentals.WithLabelValues(outcome).Inc()
}
