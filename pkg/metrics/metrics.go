package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Backend API metrics
	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec

	// Session metrics
	Logins  *prometheus.CounterVec
	Logouts *prometheus.CounterVec

	// Notice metrics
	Notices *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics on the
// default registry.
func NewMetrics(namespace, subsystem string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace, subsystem)
}

// NewMetricsWith registers on an explicit registerer. Tests use this
// with a throwaway registry to avoid duplicate registration panics.
func NewMetricsWith(reg prometheus.Registerer, namespace, subsystem string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BackendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "backend_requests_total",
			Help:      "Total number of clinic API requests by role, operation and outcome",
		}, []string{"role", "operation", "outcome"}),
		BackendLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of clinic API requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"role", "operation"}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "logins_total",
			Help:      "Total number of login attempts by role and outcome",
		}, []string{"role", "outcome"}),
		Logouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "logouts_total",
			Help:      "Total number of logouts by role",
		}, []string{"role"}),
		Notices: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notices_total",
			Help:      "Total number of user-visible notices by level",
		}, []string{"level"}),
	}
}

// ObserveBackend records one clinic API call.
func (m *Metrics) ObserveBackend(role, operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.BackendRequests.WithLabelValues(role, operation, outcome).Inc()
	m.BackendLatency.WithLabelValues(role, operation).Observe(time.Since(start).Seconds())
}
