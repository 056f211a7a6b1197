package factory

import (
	"context"
	"net/url"

	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo"
	"github.com/bsv-blockchain/mockindexer/stores/utxo/memory"
	"github.com/bsv-blockchain/mockindexer/ulogger"
)

func init() {
	availableDatabases["memory"] = func(_ context.Context, logger ulogger.Logger, _ *settings.Settings, _ *url.URL) (utxo.Store, error) {
		return memory.New(logger), nil
	}
}
