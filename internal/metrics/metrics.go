// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the service collectors.
//
//   - tracker_http_requests_total{method,route,status}
//   - tracker_http_request_duration_seconds{method,route}
//   - tracker_notify_subscribers
//   - tracker_notify_events_total{result} - "delivered" or "dropped"
//   - tracker_auth_failures_total{reason}
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Subscribers     prometheus.Gauge
	NotifyEvents    *prometheus.CounterVec
	AuthFailures    *prometheus.CounterVec
}

// New registers the collectors with reg. Tests pass a fresh registry so
// repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_http_requests_total",
				Help: "Total HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"method", "route"},
		),
		Subscribers: f.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_notify_subscribers",
			Help: "Currently connected change-stream listeners",
		}),
		NotifyEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_notify_events_total",
				Help: "Change events offered to listeners by outcome",
			},
			[]string{"result"},
		),
		AuthFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_auth_failures_total",
				Help: "Rejected requests on protected routes by reason",
			},
			[]string{"reason"},
		),
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) AuthFailed(reason string) {
	m.AuthFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) SetSubscribers(n int) {
	m.Subscribers.Set(float64(n))
}

func (m *Metrics) EventDelivered() {
	m.NotifyEvents.WithLabelValues("delivered").Inc()
}

func (m *Metrics) EventDropped() {
	m.NotifyEvents.WithLabelValues("dropped").Inc()
}
