package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fdweb_page_views_total",
			Help: "Landing page views recorded in the ledger",
		},
	)

	QuizStarts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fdweb_quiz_starts_total",
			Help: "Diagnostic collector sessions started",
		},
	)

	DiagnosticsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fdweb_diagnostics_completed_total",
			Help: "Leads appended to the ledger",
		},
		[]string{"service_type"},
	)

	EnrichmentFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fdweb_enrichment_fallbacks_total",
			Help: "Enrichment calls answered with fallback content",
		},
		[]string{"operation"},
	)

	EnrichmentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fdweb_enrichment_duration_seconds",
			Help:    "Duration of enrichment provider calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"operation"},
	)
)
