package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcome labels
const (
	OutcomeSuccess    = "success"
	OutcomeRejected   = "rejected"
	OutcomeTransport  = "transport_error"
	OutcomeInProgress = "in_progress"
)

// DispatchMetricsCollector counts transaction dispatches by action and outcome
type DispatchMetricsCollector struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
}

// NewDispatchMetricsCollector creates a new dispatch metrics collector
func NewDispatchMetricsCollector() *DispatchMetricsCollector {
	return &DispatchMetricsCollector{
		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "dispatch_total",
				Help:      "Transaction dispatches by action and classified outcome",
			},
			[]string{"action", "outcome"},
		),

		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "dispatch_duration_seconds",
				Help:      "Round-trip time of transaction dispatches",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"action"},
		),
	}
}

// Register registers all dispatch metrics with the Prometheus registry
func (c *DispatchMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, metric := range []prometheus.Collector{c.dispatchTotal, c.dispatchDuration} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordDispatch records one classified dispatch
func (c *DispatchMetricsCollector) RecordDispatch(action string, outcome string, duration float64) {
	c.dispatchTotal.WithLabelValues(action, outcome).Inc()
	if outcome != OutcomeInProgress {
		c.dispatchDuration.WithLabelValues(action).Observe(duration)
	}
}
