// Package metrics defines Prometheus metrics for travel-search.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travel"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	InboundRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inbound_rate_limited_total",
		Help:      "Total number of API requests rejected by the per-client rate limit.",
	})
)

// Amadeus API metrics.
var (
	AmadeusRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "amadeus_requests_total",
		Help:      "Total outbound Amadeus API attempts by endpoint and response status.",
	}, []string{"endpoint", "status"})

	AmadeusRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "amadeus_request_duration_seconds",
		Help:      "Duration of logical Amadeus requests including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	AmadeusRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "amadeus_retries_total",
		Help:      "Total Amadeus request retries by reason.",
	}, []string{"reason"})

	AmadeusTokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "amadeus_token_refreshes_total",
		Help:      "Total OAuth2 token exchanges by result.",
	}, []string{"result"})

	AmadeusWindowRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "amadeus_window_requests",
		Help:      "Outbound Amadeus requests issued in the current one-second window.",
	})
)

// Search metrics.
var (
	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Duration of domain searches in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service"})

	SearchResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_results_total",
		Help:      "Total results returned by domain searches.",
	}, []string{"service"})

	SearchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_failures_total",
		Help:      "Total failed domain searches.",
	}, []string{"service"})

	ActivityBranchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_branch_failures_total",
		Help:      "Total activity search branch failures by branch.",
	}, []string{"branch"})

	RecordsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_rejected_total",
		Help:      "Total provider records dropped for missing required fields.",
	}, []string{"kind"})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 when the last liveness probe succeeded.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 when the last readiness probe could obtain a provider token.",
	})

	TokenWarmupLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "token_warmup_last_success_timestamp",
		Help:      "Unix timestamp of the last successful scheduled token warm-up.",
	})

	TokenWarmupNextTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "token_warmup_next_timestamp",
		Help:      "Unix timestamp of the next scheduled token warm-up.",
	})

	TokenWarmupFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_warmup_failures_total",
		Help:      "Total failed scheduled token warm-ups.",
	})
)
