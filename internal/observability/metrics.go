// Package observability wires logging and Prometheus metrics for the
// traffic signal.
package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Wait modes recorded by RecordWait.
const (
	WaitQueue     = "queue"
	WaitBroadcast = "broadcast"
)

var (
	registerOnce sync.Once

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trafficlight",
			Subsystem: "signal",
			Name:      "transitions_total",
			Help:      "Phase transitions, by target phase.",
		},
		[]string{"light", "to"},
	)
	phase = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "trafficlight",
			Subsystem: "signal",
			Name:      "phase",
			Help:      "Current phase: 1 for green, 0 for red.",
		},
		[]string{"light"},
	)
	queueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "trafficlight",
			Subsystem: "signal",
			Name:      "queue_depth",
			Help:      "Phase values published but not yet received.",
		},
		[]string{"light"},
	)
	waitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "trafficlight",
			Subsystem: "signal",
			Name:      "wait_seconds",
			Help:      "Time callers spent waiting for green.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 4, 6, 8, 12},
		},
		[]string{"light", "mode"},
	)
)

// RegisterMetrics registers the signal collectors with the default
// Prometheus registry. Safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(transitions, phase, queueDepth, waitDuration)
	})
}

// RecordTransition counts a phase change and updates the phase gauge.
func RecordTransition(light, to string, green bool, depth int) {
	RegisterMetrics()
	transitions.WithLabelValues(light, to).Inc()
	if green {
		phase.WithLabelValues(light).Set(1)
	} else {
		phase.WithLabelValues(light).Set(0)
	}
	queueDepth.WithLabelValues(light).Set(float64(depth))
}

// RecordQueueDepth updates the queue depth gauge.
func RecordQueueDepth(light string, depth int) {
	RegisterMetrics()
	queueDepth.WithLabelValues(light).Set(float64(depth))
}

// RecordWait observes how long a caller blocked for green.
func RecordWait(light, mode string, d time.Duration) {
	RegisterMetrics()
	waitDuration.WithLabelValues(light, mode).Observe(d.Seconds())
}
