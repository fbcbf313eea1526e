package dateideas

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ideasCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dateideas_created_total",
			Help: "Total number of date ideas created",
		},
	)

	ratingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dateideas_ratings_total",
			Help: "Total number of date idea ratings",
		},
		[]string{"rating"},
	)

	recommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dateideas_recommendations_served_total",
			Help: "Total number of recommendation requests served",
		},
		[]string{"source"},
	)

	recommendationScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dateideas_recommendation_scores",
			Help:    "Distribution of recommendation match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	nearbyQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dateideas_nearby_queries_total",
			Help: "Total number of nearby date idea queries",
		},
	)
)
