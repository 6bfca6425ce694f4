package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchStrategyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "forumdex",
			Name:      "search_strategy_duration_seconds",
			Help:      "Duration of individual search strategies in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"strategy"},
	)

	SearchResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "forumdex",
			Name:      "search_results_total",
			Help:      "Total results returned per search strategy",
		},
		[]string{"strategy"},
	)

	SearchMergedResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "forumdex",
			Name:      "search_merged_results",
			Help:      "Result count after merging and deduplicating strategies",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
		},
	)

	SearchFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "forumdex",
			Name:      "search_fallbacks_total",
			Help:      "Times comprehensive search fell back to plain keyword search",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchStrategyDuration)
	prometheus.MustRegister(SearchResultsTotal)
	prometheus.MustRegister(SearchMergedResults)
	prometheus.MustRegister(SearchFallbacksTotal)
	searchMetricsRegistered = true
}
