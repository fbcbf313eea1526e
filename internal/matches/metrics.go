package matches

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_created_total",
			Help: "Total number of matches created",
		},
	)

	unmatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_unmatched_total",
			Help: "Total number of matches dissolved",
		},
	)

	discoverRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matches_discover_requests_total",
			Help: "Total number of discovery requests",
		},
		[]string{"source"},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matches_compatibility_scores",
			Help:    "Distribution of candidate match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	cacheWarmRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_cache_warm_runs_total",
			Help: "Total number of discovery cache warm-up runs",
		},
	)
)
