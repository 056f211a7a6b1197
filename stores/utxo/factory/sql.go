package factory

import (
	"context"
	"net/url"

	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo"
	"github.com/bsv-blockchain/mockindexer/stores/utxo/sql"
	"github.com/bsv-blockchain/mockindexer/ulogger"
)

func init() {
	newSQLStore := func(_ context.Context, logger ulogger.Logger, _ *settings.Settings, url *url.URL) (utxo.Store, error) {
		return sql.New(logger, url)
	}

	availableDatabases["sqlitememory"] = newSQLStore
	availableDatabases["sqlite"] = newSQLStore
}
