// Package monitoring provides Prometheus instrumentation for the prep
// scheduler.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/trayline/v1/internal/domain/prep"
)

// PrepMetrics holds the scheduler's Prometheus collectors.
type PrepMetrics struct {
	runsTotal          *prometheus.CounterVec
	ordersCreatedTotal *prometheus.CounterVec
	patientErrorsTotal *prometheus.CounterVec
	runDuration        *prometheus.HistogramVec
}

// NewPrepMetrics creates and registers the scheduler metrics.
func NewPrepMetrics(reg prometheus.Registerer) *PrepMetrics {
	m := &PrepMetrics{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trayline",
			Subsystem: "prep",
			Name:      "runs_total",
			Help:      "Prep runs by slot and outcome",
		}, []string{"slot", "outcome"}),
		ordersCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trayline",
			Subsystem: "prep",
			Name:      "orders_created_total",
			Help:      "Tray orders created by prep runs",
		}, []string{"slot"}),
		patientErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trayline",
			Subsystem: "prep",
			Name:      "patient_errors_total",
			Help:      "Per-patient errors recorded during prep runs",
		}, []string{"slot"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "trayline",
			Subsystem: "prep",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of prep runs",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"slot"}),
	}

	reg.MustRegister(m.runsTotal, m.ordersCreatedTotal, m.patientErrorsTotal, m.runDuration)
	return m
}

// ObserveRun records the outcome of one prep run. A nil result means the
// run failed before producing one.
func (m *PrepMetrics) ObserveRun(slot prep.Slot, result *prep.ExecutionResult, seconds float64) {
	label := slot.String()

	outcome := "completed"
	switch {
	case result == nil:
		outcome = "failed"
	case result.PatientsProcessed == 0 && result.OrdersCreated == 0 && len(result.Errors) == 0:
		outcome = "skipped"
	}
	m.runsTotal.WithLabelValues(label, outcome).Inc()

	if result != nil {
		m.ordersCreatedTotal.WithLabelValues(label).Add(float64(result.OrdersCreated))
		m.patientErrorsTotal.WithLabelValues(label).Add(float64(len(result.Errors)))
	}
	m.runDuration.WithLabelValues(label).Observe(seconds)
}
