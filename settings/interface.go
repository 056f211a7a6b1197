package settings

import (
	"net/url"

	"github.com/bsv-blockchain/go-chaincfg"
)

type UtxoStoreSettings struct {
	// StoreURL selects the backend: memory:// or sqlitememory:///<name>
	StoreURL *url.URL
}

type ProcessorSettings struct {
	// EagerSpend retires inputs while resolving them, before scripts are verified.
	EagerSpend bool
}

type ValidatorSettings struct {
	UtxoAfterGenesis bool
}

type AssetSettings struct {
	APIPrefix         string
	HTTPListenAddress string
	EchoDebug         bool
}

type Settings struct {
	ClientName         string
	LogLevel           string
	PrettyLogs         bool
	PrometheusEndpoint string
	ChainCfgParams     *chaincfg.Params
	UtxoStore          UtxoStoreSettings
	Processor          ProcessorSettings
	Validator          ValidatorSettings
	Asset              AssetSettings
}

// IsMainnet reports whether addresses should be rendered with the mainnet prefix.
func (s *Settings) IsMainnet() bool {
	return s.ChainCfgParams != nil && s.ChainCfgParams.Name == chaincfg.MainNetParams.Name
}
