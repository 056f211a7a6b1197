// Package factory creates the utxo store selected by the utxostore setting.
//
// Supported urls:
//   - memory://
//   - sqlitememory:///name
//   - sqlite:///path/to/file
package factory

import (
	"context"
	"net/url"

	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo"
	"github.com/bsv-blockchain/mockindexer/ulogger"
)

var availableDatabases = map[string]func(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings, url *url.URL) (utxo.Store, error){}

func NewStore(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings) (utxo.Store, error) {
	storeURL := tSettings.UtxoStore.StoreURL
	if storeURL == nil {
		return nil, errors.NewConfigurationError("missing utxostore setting")
	}

	dbInit, ok := availableDatabases[storeURL.Scheme]
	if !ok {
		return nil, errors.NewConfigurationError("unknown utxostore scheme: %s", storeURL.Scheme)
	}

	logger.Infof("[UTXOStore] using %s store", storeURL.Scheme)

	return dbInit(ctx, logger, tSettings, storeURL)
}
