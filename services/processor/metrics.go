package processor

import (
	"sync"

	"github.com/bsv-blockchain/mockindexer/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusProcessedTransactions prometheus.Counter
	prometheusInvalidTransactions   *prometheus.CounterVec
	prometheusProcessTransaction    prometheus.Histogram
	prometheusTransactionSize       prometheus.Histogram
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusProcessedTransactions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mockindexer",
			Subsystem: "processor",
			Name:      "processed_transactions",
			Help:      "Number of transactions accepted by the processor",
		},
	)

	prometheusInvalidTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mockindexer",
			Subsystem: "processor",
			Name:      "invalid_transactions",
			Help:      "Number of transactions rejected by the processor",
		},
		[]string{
			"reason", // error code of the rejection
		},
	)

	prometheusProcessTransaction = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mockindexer",
			Subsystem: "processor",
			Name:      "process_transaction",
			Help:      "Histogram of transaction processing",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusTransactionSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mockindexer",
			Subsystem: "processor",
			Name:      "transaction_size",
			Help:      "Size of processed transactions",
			Buckets:   util.MetricsBucketsSize,
		},
	)
}
