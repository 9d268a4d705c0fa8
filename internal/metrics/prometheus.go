package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "userapi"

// PrometheusRecorder implements Recorder on a dedicated Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	usersCreated    prometheus.Counter
	usersRejected   prometheus.Counter
	userCount       prometheus.Gauge
	eventsPublished *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewPrometheus registers all collectors on a fresh registry, including Go runtime
// and process collectors.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()

	p := &PrometheusRecorder{
		registry: reg,
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Total number of users created",
		}),
		usersRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_rejected_total",
			Help:      "Total number of create requests rejected for missing fields",
		}),
		userCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "users",
			Help:      "Number of users currently held in the store",
		}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_events_published_total",
			Help:      "Total number of user events published by outcome",
		}, []string{"status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.usersCreated,
		p.usersRejected,
		p.userCount,
		p.eventsPublished,
		p.httpRequests,
		p.httpDuration,
	)

	return p
}

// Handler serves the registry in Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// IncUserCreated increments the created counter.
func (p *PrometheusRecorder) IncUserCreated() {
	p.usersCreated.Inc()
}

// IncUserRejected increments the rejected counter.
func (p *PrometheusRecorder) IncUserRejected() {
	p.usersRejected.Inc()
}

// SetUserCount records the current store size.
func (p *PrometheusRecorder) SetUserCount(n int) {
	p.userCount.Set(float64(n))
}

// IncEventPublished counts publish outcomes.
func (p *PrometheusRecorder) IncEventPublished(status string) {
	p.eventsPublished.WithLabelValues(status).Inc()
}

// ObserveHTTPRequest records a finished request. Status is bucketed into its class (2xx, 4xx, ...).
func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	statusClass := fmt.Sprintf("%dxx", status/100)
	p.httpRequests.WithLabelValues(method, route, statusClass).Inc()
	p.httpDuration.WithLabelValues(method, route, statusClass).Observe(duration.Seconds())
}
