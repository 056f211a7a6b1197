package httpimpl

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Each counter is labelled with the handler ("function") and the response status ("operation").
var (
	prometheusAssetHTTPGetUtxos     *prometheus.CounterVec
	prometheusAssetHTTPBroadcast    *prometheus.CounterVec
	prometheusAssetHTTPGetRawTx     *prometheus.CounterVec
	prometheusAssetHTTPGetFt        *prometheus.CounterVec
	prometheusAssetHTTPGetNft       *prometheus.CounterVec
	prometheusAssetHTTPGetUtxoSpent *prometheus.CounterVec
	prometheusAssetHTTPAdmin        *prometheus.CounterVec
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func newCounterVec(name, help string) *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mockindexer",
			Subsystem: "asset",
			Name:      name,
			Help:      help,
		},
		[]string{
			"function",  // function tracking the operation
			"operation", // type of operation achieved
		},
	)
}

func _initPrometheusMetrics() {
	prometheusAssetHTTPGetUtxos = newCounterVec("http_get_utxos", "Number of Get utxos ops")
	prometheusAssetHTTPBroadcast = newCounterVec("http_broadcast", "Number of broadcast ops")
	prometheusAssetHTTPGetRawTx = newCounterVec("http_get_raw_tx", "Number of Get raw transaction ops")
	prometheusAssetHTTPGetFt = newCounterVec("http_get_ft", "Number of fungible token query ops")
	prometheusAssetHTTPGetNft = newCounterVec("http_get_nft", "Number of non fungible token query ops")
	prometheusAssetHTTPGetUtxoSpent = newCounterVec("http_get_utxo_spent", "Number of Get utxo spent ops")
	prometheusAssetHTTPAdmin = newCounterVec("http_admin", "Number of reset and clean ops")
}
