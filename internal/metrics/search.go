package metrics

import "github.com/prometheus/client_golang/prometheus"

// Matching engine Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "careermatch",
			Name:      "search_duration_seconds",
			Help:      "Full match pipeline duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	SearchCascadeLevelTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careermatch",
			Name:      "search_cascade_level_total",
			Help:      "Searches resolved per cascade level",
		},
		[]string{"level"},
	)

	SearchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "careermatch",
			Name:      "search_results_returned",
			Help:      "Number of ranked results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchCascadeLevelTotal)
	prometheus.MustRegister(SearchResultsReturned)
	searchMetricsRegistered = true
}
