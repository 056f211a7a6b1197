// Package sql implements the utxo store on top of sqlite through database/sql.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/model"
	"github.com/bsv-blockchain/mockindexer/stores/utxo"
	"github.com/bsv-blockchain/mockindexer/ulogger"
	"github.com/bsv-blockchain/mockindexer/util"
	"github.com/bsv-blockchain/mockindexer/util/usql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const selectColumns = `txid, vout, satoshis, locking_script, kind, address, codehash, genesis, token_index, amount, price`

type Store struct {
	logger ulogger.Logger
	db     *usql.DB
	engine string
}

func New(logger ulogger.Logger, storeURL *url.URL) (*Store, error) {
	initPrometheusMetrics()

	db, err := util.InitSQLDB(logger, storeURL)
	if err != nil {
		return nil, err
	}

	if err = createSqliteSchema(db); err != nil {
		return nil, err
	}

	return &Store{
		logger: logger,
		db:     db,
		engine: storeURL.Scheme,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Health(ctx context.Context) (int, string, error) {
	details := fmt.Sprintf("SQL Engine is %s", s.engine)

	var num int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&num); err != nil {
		return http.StatusServiceUnavailable, details, errors.NewStorageUnavailableError("sql store not available", err)
	}

	return http.StatusOK, details, nil
}

func (s *Store) Insert(ctx context.Context, entry *model.UtxoEntry) error {
	if entry == nil {
		return errors.NewInvalidArgumentError("entry is nil")
	}

	satoshis, err := safeconversion.Uint64ToInt64(entry.Satoshis)
	if err != nil {
		return errors.NewInvalidArgumentError("satoshis of %s out of range", entry.Outpoint, err)
	}

	price := int64(0)

	columns := columnsFor(entry)
	if columns.price > 0 {
		if price, err = safeconversion.Uint64ToInt64(columns.price); err != nil {
			return errors.NewInvalidArgumentError("price of %s out of range", entry.Outpoint, err)
		}
	}

	var lockingScript interface{}
	if entry.LockingScript != nil {
		lockingScript = []byte(*entry.LockingScript)
	}

	err = s.db.WithTx(ctx, func(txn *sql.Tx) error {
		var spent int
		if err := txn.QueryRowContext(ctx, `SELECT COUNT(*) FROM spent WHERE txid = $1 AND vout = $2`,
			entry.TxID[:], entry.Vout).Scan(&spent); err != nil {
			return errors.NewStorageError("failed to check spent log for %s", entry.Outpoint, err)
		}

		if spent > 0 {
			return errors.NewTxAlreadyExistsError("utxo %s was already spent", entry.Outpoint)
		}

		_, err := txn.ExecContext(ctx, `
			INSERT INTO utxos (
			 txid
			,vout
			,satoshis
			,locking_script
			,kind
			,address
			,codehash
			,genesis
			,token_index
			,amount
			,price
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, entry.TxID[:], entry.Vout, satoshis, lockingScript, int(entry.Kind()), columns.address,
			columns.codehash, columns.genesis, columns.tokenIndex, columns.amount, price)
		if err != nil {
			if isUniqueViolation(err) {
				return errors.NewTxAlreadyExistsError("utxo %s already exists", entry.Outpoint)
			}

			return errors.NewStorageError("failed to insert utxo %s", entry.Outpoint, err)
		}

		return nil
	})
	if err != nil {
		prometheusUtxoErrors.WithLabelValues("Insert").Inc()
		return err
	}

	prometheusUtxoInsert.Inc()

	return nil
}

func (s *Store) Get(ctx context.Context, outpoint model.Outpoint) (*model.UtxoEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM utxos WHERE txid = $1 AND vout = $2`,
		outpoint.TxID[:], outpoint.Vout)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("utxo %s not found", outpoint)
		}

		return nil, err
	}

	return entry, nil
}

func (s *Store) RemoveByOutpoint(ctx context.Context, outpoint model.Outpoint) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM utxos WHERE txid = $1 AND vout = $2`, outpoint.TxID[:], outpoint.Vout)
	if err != nil {
		prometheusUtxoErrors.WithLabelValues("RemoveByOutpoint").Inc()
		return false, errors.NewStorageError("failed to remove utxo %s", outpoint, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewStorageError("failed to remove utxo %s", outpoint, err)
	}

	if affected > 0 {
		prometheusUtxoRemove.Inc()
	}

	return affected > 0, nil
}

func (s *Store) RecordSpent(ctx context.Context, record *model.SpentRecord) error {
	if record == nil {
		return errors.NewInvalidArgumentError("spent record is nil")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO spent (txid, vout, spending_txid, spending_input_index) VALUES ($1, $2, $3, $4)
	`, record.Outpoint.TxID[:], record.Outpoint.Vout, record.SpendingTxID[:], record.SpendingInputIndex)
	if err != nil {
		prometheusUtxoErrors.WithLabelValues("RecordSpent").Inc()
		return errors.NewStorageError("failed to record spend of %s", record.Outpoint, err)
	}

	return nil
}

func (s *Store) IsSpent(ctx context.Context, outpoint model.Outpoint) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spent WHERE txid = $1 AND vout = $2`,
		outpoint.TxID[:], outpoint.Vout).Scan(&count); err != nil {
		return false, errors.NewStorageError("failed to read spent log for %s", outpoint, err)
	}

	return count > 0, nil
}

func (s *Store) ArchiveTransaction(ctx context.Context, txID chainhash.Hash, raw []byte) error {
	if _, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO transactions (txid, raw) VALUES ($1, $2)`, txID[:], raw); err != nil {
		prometheusUtxoErrors.WithLabelValues("ArchiveTransaction").Inc()
		return errors.NewStorageError("failed to archive transaction %s", txID, err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, txID chainhash.Hash) ([]byte, error) {
	var raw []byte
	if err := s.db.QueryRowContext(ctx, `SELECT raw FROM transactions WHERE txid = $1`, txID[:]).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewTxNotFoundError("transaction %s not found", txID)
		}

		return nil, errors.NewStorageError("failed to read transaction %s", txID, err)
	}

	return raw, nil
}

func (s *Store) HasTransaction(ctx context.Context, txID chainhash.Hash) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE txid = $1`, txID[:]).Scan(&count); err != nil {
		return false, errors.NewStorageError("failed to read transaction %s", txID, err)
	}

	return count > 0, nil
}

func (s *Store) GetByAddress(ctx context.Context, kind model.Kind, address string) ([]*model.UtxoEntry, error) {
	return s.query(ctx, `SELECT `+selectColumns+` FROM utxos WHERE kind = $1 AND address = $2 ORDER BY id`, int(kind), address)
}

func (s *Store) GetByToken(ctx context.Context, kind model.Kind, codehash, genesis string, opts ...utxo.LookupOption) ([]*model.UtxoEntry, error) {
	options := utxo.NewLookupOptions(opts...)

	q := strings.Builder{}
	q.WriteString(`SELECT ` + selectColumns + ` FROM utxos WHERE kind = $1 AND codehash = $2 AND genesis = $3`)

	args := []interface{}{int(kind), codehash, genesis}

	if options.Address != nil {
		args = append(args, *options.Address)
		q.WriteString(fmt.Sprintf(" AND address = $%d", len(args)))
	}

	if options.TokenIndex != nil {
		args = append(args, *options.TokenIndex)
		q.WriteString(fmt.Sprintf(" AND token_index = $%d", len(args)))
	}

	q.WriteString(" ORDER BY id")

	return s.query(ctx, q.String(), args...)
}

func (s *Store) query(ctx context.Context, q string, args ...interface{}) ([]*model.UtxoEntry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.NewStorageError("failed to query utxos", err)
	}

	defer rows.Close()

	entries := make([]*model.UtxoEntry, 0)

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.NewStorageError("failed to iterate utxos", err)
	}

	return entries, nil
}

func (s *Store) RemoveByKind(ctx context.Context, kind model.Kind) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM utxos WHERE kind = $1`, int(kind))
	if err != nil {
		prometheusUtxoErrors.WithLabelValues("RemoveByKind").Inc()
		return 0, errors.NewStorageError("failed to remove %s utxos", kind, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewStorageError("failed to remove %s utxos", kind, err)
	}

	s.logger.Debugf("[SQL] removed %d %s utxos", affected, kind)

	return int(affected), nil
}

func (s *Store) Reset(ctx context.Context) error {
	err := s.db.WithTx(ctx, func(txn *sql.Tx) error {
		for _, table := range []string{"utxos", "spent", "transactions"} {
			if _, err := txn.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return errors.NewStorageError("failed to clear %s", table, err)
			}
		}

		return nil
	})
	if err != nil {
		prometheusUtxoErrors.WithLabelValues("Reset").Inc()
		return err
	}

	prometheusUtxoReset.Inc()

	return nil
}

func (s *Store) Stats(ctx context.Context) (*utxo.Stats, error) {
	stats := &utxo.Stats{
		ByKind: make(map[model.Kind]int),
	}

	counts := []struct {
		q    string
		dest *int
	}{
		{`SELECT COUNT(*) FROM utxos`, &stats.Active},
		{`SELECT COUNT(*) FROM spent`, &stats.Spent},
		{`SELECT COUNT(*) FROM transactions`, &stats.Transactions},
	}

	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.q).Scan(c.dest); err != nil {
			return nil, errors.NewStorageError("failed to read stats", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM utxos GROUP BY kind`)
	if err != nil {
		return nil, errors.NewStorageError("failed to read stats", err)
	}

	defer rows.Close()

	for rows.Next() {
		var (
			kind  int
			count int
		)

		if err = rows.Scan(&kind, &count); err != nil {
			return nil, errors.NewStorageError("failed to read stats", err)
		}

		stats.ByKind[model.Kind(kind)] = count
	}

	return stats, rows.Err()
}

type entryColumns struct {
	address    string
	codehash   string
	genesis    string
	tokenIndex string
	amount     string
	price      uint64
}

func columnsFor(entry *model.UtxoEntry) entryColumns {
	switch d := entry.Data.(type) {
	case *model.Plain:
		return entryColumns{address: d.Address}
	case *model.FungibleToken:
		c := entryColumns{address: d.Address, codehash: d.Codehash, genesis: d.Genesis, amount: "0"}
		if d.Amount != nil {
			c.amount = d.Amount.String()
		}

		return c
	case *model.NonFungibleToken:
		return entryColumns{address: d.Address, codehash: d.Codehash, genesis: d.Genesis, tokenIndex: d.TokenIndex}
	case *model.SaleListing:
		return entryColumns{
			address:    d.SellerAddress,
			codehash:   d.Codehash,
			genesis:    d.Genesis,
			tokenIndex: d.TokenIndex,
			price:      d.Price,
		}
	default:
		return entryColumns{}
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*model.UtxoEntry, error) {
	var (
		txID          []byte
		vout          uint32
		satoshis      int64
		lockingScript []byte
		kind          int
		c             entryColumns
		price         int64
	)

	if err := row.Scan(&txID, &vout, &satoshis, &lockingScript, &kind, &c.address, &c.codehash,
		&c.genesis, &c.tokenIndex, &c.amount, &price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, errors.NewStorageError("failed to scan utxo", err)
	}

	hash, err := chainhash.NewHash(txID)
	if err != nil {
		return nil, errors.NewStorageError("invalid txid in utxo row", err)
	}

	if satoshis < 0 || price < 0 {
		return nil, errors.NewStorageError("negative value in utxo row %s:%d", hash, vout)
	}

	entry := &model.UtxoEntry{
		Outpoint: model.NewOutpoint(hash, vout),
		Satoshis: uint64(satoshis),
	}

	if lockingScript != nil {
		entry.LockingScript = bscript.NewFromBytes(lockingScript)
	}

	switch model.Kind(kind) {
	case model.KindPlain:
		entry.Data = &model.Plain{Address: c.address}
	case model.KindFungibleToken:
		amount, ok := new(big.Int).SetString(c.amount, 10)
		if !ok {
			return nil, errors.NewStorageError("invalid token amount %q in utxo row %s", c.amount, entry.Outpoint)
		}

		entry.Data = &model.FungibleToken{Codehash: c.codehash, Genesis: c.genesis, Address: c.address, Amount: amount}
	case model.KindNonFungibleToken:
		entry.Data = &model.NonFungibleToken{Codehash: c.codehash, Genesis: c.genesis, Address: c.address, TokenIndex: c.tokenIndex}
	case model.KindSaleListing:
		entry.Data = &model.SaleListing{
			Codehash:      c.codehash,
			Genesis:       c.genesis,
			TokenIndex:    c.tokenIndex,
			SellerAddress: c.address,
			Price:         uint64(price),
		}
	default:
		entry.Data = &model.Unclassified{}
	}

	return entry, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
