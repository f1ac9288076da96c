package metrics

import "github.com/prometheus/client_golang/prometheus"

// Matching pipeline Prometheus metrics.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "menulens",
			Name:      "match_requests_total",
			Help:      "Total match requests by final status",
		},
		[]string{"status"}, // CONFIRMED / AMBIGUOUS / NOT_FOUND
	)

	MatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "menulens",
			Name:      "match_duration_seconds",
			Help:      "End-to-end match pipeline duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	MatchPrefilterSkipsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "menulens",
			Name:      "match_prefilter_skips_total",
			Help:      "Queries rejected by the non-menu prefilter",
		},
		[]string{"reason"},
	)

	MatchVectorFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "menulens",
			Name:      "match_vector_fallbacks_total",
			Help:      "Matches that degraded to lexical-only scoring after a vector stage failure",
		},
	)
)

var matchMetricsRegistered bool

// RegisterMatchMetrics registers Prometheus matching metrics. Must be called once from main.
func RegisterMatchMetrics() {
	if matchMetricsRegistered {
		return
	}
	prometheus.MustRegister(MatchRequestsTotal)
	prometheus.MustRegister(MatchDuration)
	prometheus.MustRegister(MatchPrefilterSkipsTotal)
	prometheus.MustRegister(MatchVectorFallbacksTotal)
	matchMetricsRegistered = true
}
