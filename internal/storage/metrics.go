package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// persistWritesTotal counts persister writes by outcome: ok, error,
// dropped, coalesced.
var persistWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "quote_discovery",
		Subsystem: "persist",
		Name:      "writes_total",
		Help:      "Total number of persisted state writes by outcome",
	},
	[]string{"outcome"},
)
