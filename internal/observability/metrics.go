package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reportctl",
			Subsystem: "connector",
			Name:      "submissions_total",
			Help:      "Report submissions by outcome.",
		},
		[]string{"outcome"},
	)
	submissionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reportctl",
			Subsystem: "connector",
			Name:      "submission_duration_seconds",
			Help:      "End-to-end submission duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
	connectAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reportctl",
			Subsystem: "connector",
			Name:      "connect_attempts_total",
			Help:      "TCP connect attempts issued by the dial loop.",
		},
	)
	reportsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reportctl",
			Subsystem: "receiver",
			Name:      "reports_total",
			Help:      "Reports handled by the receiver, by result.",
		},
		[]string{"result"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(submissions, submissionDuration, connectAttempts, reportsReceived)
	})
}

func RecordSubmission(outcome string, duration time.Duration) {
	RegisterMetrics()
	submissions.WithLabelValues(outcome).Inc()
	submissionDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func RecordConnectAttempt() {
	RegisterMetrics()
	connectAttempts.Inc()
}

func RecordReport(result string) {
	RegisterMetrics()
	reportsReceived.WithLabelValues(result).Inc()
}
