package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AdmissionDecisionsTotal        *prometheus.CounterVec
	AdmissionActiveWindows         prometheus.Gauge
	AdmissionAllowlistHitsTotal    prometheus.Counter
	AdmissionThrottledTotal        prometheus.Counter
	AdmissionStoreFailuresTotal    prometheus.Counter
	AdmissionCleanupRunsTotal      *prometheus.CounterVec
	AdmissionCleanupRemovedTotal   *prometheus.CounterVec
	AdmissionCleanupDurationSecond prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		AdmissionDecisionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatekeeper_admission_decisions_total",
			Help: "Total admission decisions by outcome and deny reason",
		}, []string{"outcome", "reason"}),
		AdmissionActiveWindows: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gatekeeper_admission_active_windows",
			Help: "Current number of tracked rate limit windows",
		}),
		AdmissionAllowlistHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_admission_allowlist_hits_total",
			Help: "Total requests admitted via an allowlist entry",
		}),
		AdmissionThrottledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_admission_throttled_total",
			Help: "Total requests shed by the instance throttle",
		}),
		AdmissionStoreFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_admission_store_failures_total",
			Help: "Total window store errors that caused a fail-open admission",
		}),
		AdmissionCleanupRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatekeeper_admission_cleanup_runs_total",
			Help: "Total cleanup worker runs",
		}, []string{"status"}),
		AdmissionCleanupRemovedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatekeeper_admission_cleanup_removed_total",
			Help: "Total expired records removed by the cleanup worker",
		}, []string{"store"}),
		AdmissionCleanupDurationSecond: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "gatekeeper_admission_cleanup_duration_seconds",
			Help: "Duration of cleanup worker runs in seconds",
		}),
	}
}

func (m *Metrics) RecordDecision(outcome, reason string) {
	m.AdmissionDecisionsTotal.WithLabelValues(outcome, reason).Inc()
}

func (m *Metrics) SetActiveWindows(count int) {
	m.AdmissionActiveWindows.Set(float64(count))
}

func (m *Metrics) IncrementAllowlistHits() {
	m.AdmissionAllowlistHitsTotal.Inc()
}

func (m *Metrics) IncrementThrottled() {
	m.AdmissionThrottledTotal.Inc()
}

func (m *Metrics) IncrementStoreFailures() {
	m.AdmissionStoreFailuresTotal.Inc()
}

func (m *Metrics) IncrementCleanupRuns(status string) {
	m.AdmissionCleanupRunsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) AddCleanupRemoved(store string, count int) {
	m.AdmissionCleanupRemovedTotal.WithLabelValues(store).Add(float64(count))
}

func (m *Metrics) ObserveCleanupDuration(seconds float64) {
	m.AdmissionCleanupDurationSecond.Observe(seconds)
}
