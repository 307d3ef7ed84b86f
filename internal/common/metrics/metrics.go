// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Total number of submissions by final outcome",
		},
		[]string{"outcome"},
	)

	AbuseRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_abuse_rejections_total",
			Help: "Submissions rejected by the abuse gate",
		},
		[]string{"reason"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_validation_failures_total",
			Help: "Field rule violations by field identifier",
		},
		[]string{"field"},
	)

	DocumentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_documents_total",
			Help: "Document composition results",
		},
		[]string{"status"},
	)

	EmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_emails_total",
			Help: "Notification delivery results",
		},
		[]string{"status"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
)
