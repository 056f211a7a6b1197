package settings

import (
	"github.com/bsv-blockchain/go-chaincfg"
)

func NewSettings() *Settings {
	params, err := chaincfg.GetChainParams(getString("network", "mainnet"))
	if err != nil {
		panic(err)
	}

	return &Settings{
		ClientName:         getString("clientName", "mockindexer"),
		LogLevel:           getString("logLevel", "INFO"),
		PrettyLogs:         getBool("PRETTY_LOGS", true),
		PrometheusEndpoint: getString("prometheusEndpoint", "/metrics"),
		ChainCfgParams:     params,
		UtxoStore: UtxoStoreSettings{
			StoreURL: getURL("utxostore", "memory://"),
		},
		Processor: ProcessorSettings{
			EagerSpend: getBool("processor_eagerSpend", false),
		},
		Validator: ValidatorSettings{
			UtxoAfterGenesis: getBool("validator_utxoAfterGenesis", false),
		},
		Asset: AssetSettings{
			APIPrefix:         getString("asset_apiPrefix", "/api/v1"),
			HTTPListenAddress: getString("asset_httpListenAddress", ":8090"),
			EchoDebug:         getBool("asset_echoDebug", false),
		},
	}
}
