package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tracks the number of outbound API calls to Stripe.
	StripeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stripe_api_requests_total",
			Help: "Total number of Stripe API requests made (by endpoint, method and result).",
		},
		[]string{"endpoint", "method", "result"},
	)

	// Measures duration of API requests to Stripe.
	StripeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stripe_api_request_duration_seconds",
			Help:    "Duration of Stripe API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms -> ~16s
		},
		[]string{"endpoint", "method"},
	)

	// Tracks provision cache hits and misses per slot.
	CacheAccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provision_cache_access_total",
			Help: "Number of hits/misses on the provision cache slots.",
		},
		[]string{"slot", "result"}, // result = "hit" | "miss"
	)

	// Counts payment links handed out, split by whether an existing link was reused.
	PaymentLinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_links_total",
			Help: "Payment links returned to fans (reused vs created).",
		},
		[]string{"outcome"}, // outcome = "reused" | "created"
	)

	// Size of the last computed leaderboard.
	LeaderboardSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "leaderboard_sellers",
			Help: "Number of sellers in the most recently computed leaderboard.",
		},
	)

	// Counts NATS events published, by result.
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to NATS.",
		},
		[]string{"subject", "result"}, // result = "ok" | "error"
	)
)

// ObserveStripeRequest records one outbound Stripe call.
func ObserveStripeRequest(endpoint, method string, err error, start time.Time) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StripeRequestsTotal.WithLabelValues(endpoint, method, result).Inc()
	StripeRequestDuration.WithLabelValues(endpoint, method).Observe(time.Since(start).Seconds())
}

// IncCache records a cache slot access.
func IncCache(slot string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheAccess.WithLabelValues(slot, result).Inc()
}
