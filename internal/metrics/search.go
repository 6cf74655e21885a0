package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and catalog Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quizdex",
			Name:      "search_requests_total",
			Help:      "Total number of ranked search requests",
		},
		[]string{"status"},
	)

	SearchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "quizdex",
			Name:      "search_results_returned",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200},
		},
		[]string{},
	)

	SearchMatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quizdex",
			Name:      "search_matches_total",
			Help:      "Top-ranked match locality per search",
		},
		[]string{"match_type"},
	)

	AdminCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quizdex",
			Name:      "admin_cache_total",
			Help:      "Admin status cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchResultsReturned)
	prometheus.MustRegister(SearchMatchesTotal)
	prometheus.MustRegister(AdminCacheTotal)
	searchMetricsRegistered = true
}
