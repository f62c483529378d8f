// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by route pattern, method and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatherplan_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration tracks request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gatherplan_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// RecommendationCacheTotal counts cache lookups by result (hit or miss).
	RecommendationCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatherplan_recommendation_cache_total",
			Help: "Recommendation cache lookups by result",
		},
		[]string{"result"},
	)

	// RankingDuration tracks how long a full ranking pass takes.
	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gatherplan_ranking_duration_seconds",
			Help:    "Duration of venue ranking in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// EventsCreatedTotal counts successfully created events.
	EventsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatherplan_events_created_total",
			Help: "Total number of events created",
		},
	)

	// ParticipantsAddedTotal counts accepted participant responses.
	ParticipantsAddedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatherplan_participants_added_total",
			Help: "Total number of participant responses recorded",
		},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatherplan_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

func RecordRequest(route, method string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

func RecordCacheHit() {
	RecommendationCacheTotal.WithLabelValues("hit").Inc()
}

func RecordCacheMiss() {
	RecommendationCacheTotal.WithLabelValues("miss").Inc()
}

func RecordRanking(d time.Duration) {
	RankingDuration.Observe(d.Seconds())
}
