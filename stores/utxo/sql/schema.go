package sql

import (
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/util/usql"
)

var schema = []struct {
	name string
	ddl  string
}{
	{"utxos table", `
      CREATE TABLE IF NOT EXISTS utxos (
        id             INTEGER PRIMARY KEY AUTOINCREMENT
       ,txid           BLOB NOT NULL
       ,vout           BIGINT NOT NULL
       ,satoshis       BIGINT NOT NULL
       ,locking_script BLOB
       ,kind           INTEGER NOT NULL
       ,address        TEXT NOT NULL DEFAULT ''
       ,codehash       TEXT NOT NULL DEFAULT ''
       ,genesis        TEXT NOT NULL DEFAULT ''
       ,token_index    TEXT NOT NULL DEFAULT ''
       ,amount         TEXT NOT NULL DEFAULT ''
       ,price          BIGINT NOT NULL DEFAULT 0
      );
	`},
	{"ux_utxos_outpoint idx", `CREATE UNIQUE INDEX IF NOT EXISTS ux_utxos_outpoint ON utxos (txid, vout);`},
	{"ix_utxos_kind_address idx", `CREATE INDEX IF NOT EXISTS ix_utxos_kind_address ON utxos (kind, address);`},
	{"ix_utxos_kind_token idx", `CREATE INDEX IF NOT EXISTS ix_utxos_kind_token ON utxos (kind, codehash, genesis);`},
	{"spent table", `
      CREATE TABLE IF NOT EXISTS spent (
        txid                 BLOB NOT NULL
       ,vout                 BIGINT NOT NULL
       ,spending_txid        BLOB NOT NULL
       ,spending_input_index BIGINT NOT NULL
       ,PRIMARY KEY (txid, vout)
      );
	`},
	{"transactions table", `
      CREATE TABLE IF NOT EXISTS transactions (
        txid BLOB PRIMARY KEY
       ,raw  BLOB NOT NULL
      );
	`},
}

func createSqliteSchema(db *usql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt.ddl); err != nil {
			_ = db.Close()
			return errors.NewStorageError("could not create %s", stmt.name, err)
		}
	}

	return nil
}
