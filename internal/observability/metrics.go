package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes recorded by RecordLogin.
const (
	LoginSucceeded    = "success"
	LoginInvalidInput = "invalid_input"
	LoginRejected     = "invalid_credentials"
	LoginForbidden    = "forbidden"
	LoginFailed       = "error"
)

// Metrics holds the Prometheus collectors for the service. A nil *Metrics records nothing.
type Metrics struct {
	registry            *prometheus.Registry
	requests            *prometheus.CounterVec
	latency             *prometheus.HistogramVec
	errors              *prometheus.CounterVec
	logins              *prometheus.CounterVec
	trackingCollisions  prometheus.Counter
	shipmentsRegistered prometheus.Counter
}

// NewMetrics registers collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alliance_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alliance_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alliance_http_errors_total",
			Help: "Error responses by route, method and error code",
		}, []string{"route", "method", "code"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alliance_admin_logins_total",
			Help: "Admin login attempts by outcome",
		}, []string{"outcome"}),
		trackingCollisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "alliance_tracking_code_collisions_total",
			Help: "Generated tracking codes rejected as duplicates",
		}),
		shipmentsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "alliance_shipments_registered_total",
			Help: "Shipments registered",
		}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordLogin counts a login attempt.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// RecordTrackingCollision counts a duplicate generated code.
func (m *Metrics) RecordTrackingCollision() {
	if m == nil {
		return
	}
	m.trackingCollisions.Inc()
}

// RecordShipmentRegistered counts a stored shipment.
func (m *Metrics) RecordShipmentRegistered() {
	if m == nil {
		return
	}
	m.shipmentsRegistered.Inc()
}
