package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Throughput metrics - Track request volume
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storageapi_requests_total",
			Help: "Total number of API requests by endpoint and status code",
		},
		[]string{"endpoint", "status"},
	)

	RowsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storageapi_page_rows_returned",
		Help:    "Number of rows returned per page query",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200},
	})
)

// Performance metrics - Track query latency
var (
	PageQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storageapi_page_query_duration_seconds",
		Help:    "Time taken to execute a contract data page query",
		Buckets: prometheus.DefBuckets,
	})
)

// Collaborator metrics - Track the latest-ledger cache
var (
	LedgerCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storageapi_ledger_cache_hits_total",
		Help: "Latest-ledger lookups served from the cache",
	})

	LedgerCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storageapi_ledger_cache_misses_total",
		Help: "Latest-ledger lookups that required an RPC round trip",
	})
)
