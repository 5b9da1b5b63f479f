package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "handoff"

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Metrics holds the pipeline metrics and the registry they are exposed from.
type Metrics struct {
	WorkCompleted *prometheus.CounterVec
	WorkDuration  *prometheus.HistogramVec
	Delivered     prometheus.Counter

	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	m := &Metrics{
		WorkCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "work",
				Name:      "completed_total",
				Help:      "Total number of work items executed by the worker",
			},
			[]string{"kind", "status"},
		),
		WorkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "work",
				Name:      "duration_seconds",
				Help:      "Time spent executing a work item",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"kind"},
		),
		Delivered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "work",
				Name:      "delivered_total",
				Help:      "Total number of completion notifications dispatched",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(m.WorkCompleted, m.WorkDuration, m.Delivered)

	return m
}

// ObserveWork records one executed item.
func (m *Metrics) ObserveWork(kind string, d time.Duration, err error) {
	status := StatusSucceeded
	if err != nil {
		status = StatusFailed
	}
	m.WorkCompleted.WithLabelValues(kind, status).Inc()
	m.WorkDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// TrackQueue exposes the depth of a queue, read at scrape time.
func (m *Metrics) TrackQueue(name string, count func() int) error {
	return m.registry.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "queue",
			Name:        "depth",
			Help:        "Number of items waiting in a queue",
			ConstLabels: prometheus.Labels{"queue": name},
		},
		func() float64 { return float64(count()) },
	))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
