package util

import (
	"fmt"
	"net/url"

	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/ulogger"
	"github.com/bsv-blockchain/mockindexer/util/usql"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLEngine string

const (
	Sqlite       SQLEngine = "sqlite"
	SqliteMemory SQLEngine = "sqlitememory"
)

// InitSQLDB opens the sqlite database described by storeURL. sqlitememory gets a private
// shared-cache in-memory database, sqlite uses the url path as the database file.
func InitSQLDB(logger ulogger.Logger, storeURL *url.URL) (*usql.DB, error) {
	var filename string

	switch SQLEngine(storeURL.Scheme) {
	case SqliteMemory:
		filename = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	case Sqlite:
		if storeURL.Path == "" || storeURL.Path == "/" {
			return nil, errors.NewConfigurationError("db: sqlite url %s has no database path", storeURL)
		}

		filename = fmt.Sprintf("%s?cache=shared&_pragma=busy_timeout=5000&_pragma=journal_mode=WAL", storeURL.Path[1:])
	default:
		return nil, errors.NewConfigurationError("db: unknown scheme: %s", storeURL.Scheme)
	}

	logger.Infof("Using sqlite DB: %s", filename)

	db, err := usql.Open("sqlite", filename)
	if err != nil {
		return nil, errors.NewServiceError("failed to open sqlite DB", err)
	}

	// one connection keeps the shared-cache memory database alive and avoids table locks
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err = db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, errors.NewServiceError("could not enable foreign keys support", err)
	}

	return db, nil
}
