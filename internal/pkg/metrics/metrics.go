// Package metrics holds the Prometheus collectors of the fulfillment service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fulfillment"

type Metrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	SweepRuns     *prometheus.CounterVec
	SweepDeclined prometheus.Counter
	SweepSkipped  prometheus.Counter

	Notifications *prometheus.CounterVec
	QueueDepth    prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
		SweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auto_decline",
			Name:      "runs_total",
			Help:      "Auto-decline passes by result.",
		}, []string{"result"}),
		SweepDeclined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auto_decline",
			Name:      "declined_items_total",
			Help:      "Items cancelled by the auto-decline sweeper.",
		}),
		SweepSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auto_decline",
			Name:      "skipped_orders_total",
			Help:      "Orders skipped because another writer changed them.",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "total",
			Help:      "Notifications by delivery result.",
		}, []string{"result"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "queue_depth",
			Help:      "Notifications waiting for a worker.",
		}),
	}

	reg.MustRegister(
		m.Requests,
		m.LatencyMS,
		m.SweepRuns,
		m.SweepDeclined,
		m.SweepSkipped,
		m.Notifications,
		m.QueueDepth,
	)
	return m
}

// Handler exposes everything registered with g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
