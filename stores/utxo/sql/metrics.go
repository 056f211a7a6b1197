package sql

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusUtxoInsert prometheus.Counter
	prometheusUtxoRemove prometheus.Counter
	prometheusUtxoReset  prometheus.Counter
	prometheusUtxoErrors *prometheus.CounterVec
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusUtxoInsert = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mockindexer",
			Subsystem: "sql_utxo",
			Name:      "insert",
			Help:      "Number of utxo inserts done to sql",
		},
	)
	prometheusUtxoRemove = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mockindexer",
			Subsystem: "sql_utxo",
			Name:      "remove",
			Help:      "Number of utxo removals done to sql",
		},
	)
	prometheusUtxoReset = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mockindexer",
			Subsystem: "sql_utxo",
			Name:      "reset",
			Help:      "Number of store resets done to sql",
		},
	)
	prometheusUtxoErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mockindexer",
			Subsystem: "sql_utxo",
			Name:      "errors",
			Help:      "Number of utxo errors",
		},
		[]string{
			"function", // function raising the error
		},
	)
}
