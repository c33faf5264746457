package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	moderationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_decisions_total",
			Help: "Total number of automatic moderation decisions by disposition",
		},
		[]string{"decision"},
	)

	moderationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moderation_pipeline_duration_seconds",
			Help:    "Duration of the scoring pipeline",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	moderationPersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moderation_persist_failures_total",
			Help: "Moderation results that could not be written to storage",
		},
	)

	manualReviews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_manual_reviews_total",
			Help: "Manual reviewer decisions by action",
		},
		[]string{"action"},
	)
)
