package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchesTotal counts searches that expressed intent.
	searchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quote_discovery",
			Name:      "searches_total",
			Help:      "Total number of executed searches",
		},
	)

	// searchResults observes result counts per executed search.
	searchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "quote_discovery",
			Name:      "search_results",
			Help:      "Number of results per executed search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// bulkItemsTotal counts bulk operation items by kind and outcome.
	bulkItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quote_discovery",
			Subsystem: "bulk",
			Name:      "items_total",
			Help:      "Total number of bulk operation items by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)
