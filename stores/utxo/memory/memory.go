// Package memory implements the utxo store in process memory.
package memory

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	txmap "github.com/bsv-blockchain/go-tx-map"
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/model"
	"github.com/bsv-blockchain/mockindexer/stores/utxo"
	"github.com/bsv-blockchain/mockindexer/ulogger"
	"github.com/dolthub/swiss"
)

const initialCapacity = 1024

type activeRecord struct {
	entry *model.UtxoEntry
	seq   uint64
}

type Memory struct {
	logger ulogger.Logger
	mu     sync.RWMutex
	active *swiss.Map[model.Outpoint, activeRecord]
	seq    uint64
	spent  *swiss.Map[model.Outpoint, *model.SpentRecord]
	txs    *txmap.SyncedMap[chainhash.Hash, []byte]
}

func New(logger ulogger.Logger) *Memory {
	return &Memory{
		logger: logger,
		active: swiss.NewMap[model.Outpoint, activeRecord](initialCapacity),
		spent:  swiss.NewMap[model.Outpoint, *model.SpentRecord](initialCapacity),
		txs:    txmap.NewSyncedMap[chainhash.Hash, []byte](),
	}
}

func (m *Memory) Health(_ context.Context) (int, string, error) {
	return http.StatusOK, "Memory Store available", nil
}

func (m *Memory) Insert(_ context.Context, entry *model.UtxoEntry) error {
	if entry == nil {
		return errors.NewInvalidArgumentError("entry is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active.Has(entry.Outpoint) {
		return errors.NewTxAlreadyExistsError("utxo %s already exists", entry.Outpoint)
	}

	if m.spent.Has(entry.Outpoint) {
		return errors.NewTxAlreadyExistsError("utxo %s was already spent", entry.Outpoint)
	}

	m.seq++
	m.active.Put(entry.Outpoint, activeRecord{entry: entry, seq: m.seq})

	return nil
}

func (m *Memory) Get(_ context.Context, outpoint model.Outpoint) (*model.UtxoEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.active.Get(outpoint)
	if !ok {
		return nil, errors.NewNotFoundError("utxo %s not found", outpoint)
	}

	return record.entry, nil
}

func (m *Memory) RemoveByOutpoint(_ context.Context, outpoint model.Outpoint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.active.Delete(outpoint), nil
}

func (m *Memory) RecordSpent(_ context.Context, record *model.SpentRecord) error {
	if record == nil {
		return errors.NewInvalidArgumentError("spent record is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.spent.Put(record.Outpoint, record)

	return nil
}

func (m *Memory) IsSpent(_ context.Context, outpoint model.Outpoint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.spent.Has(outpoint), nil
}

func (m *Memory) ArchiveTransaction(_ context.Context, txID chainhash.Hash, raw []byte) error {
	stored := make([]byte, len(raw))
	copy(stored, raw)

	m.mu.RLock()
	defer m.mu.RUnlock()

	m.txs.Set(txID, stored)

	return nil
}

func (m *Memory) GetTransaction(_ context.Context, txID chainhash.Hash) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok := m.txs.Get(txID)
	if !ok {
		return nil, errors.NewTxNotFoundError("transaction %s not found", txID)
	}

	out := make([]byte, len(raw))
	copy(out, raw)

	return out, nil
}

func (m *Memory) HasTransaction(_ context.Context, txID chainhash.Hash) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.txs.Exists(txID), nil
}

func (m *Memory) GetByAddress(_ context.Context, kind model.Kind, address string) ([]*model.UtxoEntry, error) {
	return m.collect(func(entry *model.UtxoEntry) bool {
		return entry.Kind() == kind && entry.Address() == address
	}), nil
}

func (m *Memory) GetByToken(_ context.Context, kind model.Kind, codehash, genesis string, opts ...utxo.LookupOption) ([]*model.UtxoEntry, error) {
	options := utxo.NewLookupOptions(opts...)

	return m.collect(func(entry *model.UtxoEntry) bool {
		return options.MatchesToken(entry, kind, codehash, genesis)
	}), nil
}

// collect returns the matching active entries ordered by insertion.
func (m *Memory) collect(match func(*model.UtxoEntry) bool) []*model.UtxoEntry {
	m.mu.RLock()

	records := make([]activeRecord, 0)

	m.active.Iter(func(_ model.Outpoint, record activeRecord) bool {
		if match(record.entry) {
			records = append(records, record)
		}

		return false
	})

	m.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].seq < records[j].seq
	})

	entries := make([]*model.UtxoEntry, len(records))
	for i, record := range records {
		entries[i] = record.entry
	}

	return entries
}

func (m *Memory) RemoveByKind(_ context.Context, kind model.Kind) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	remove := make([]model.Outpoint, 0)

	m.active.Iter(func(outpoint model.Outpoint, record activeRecord) bool {
		if record.entry.Kind() == kind {
			remove = append(remove, outpoint)
		}

		return false
	})

	for _, outpoint := range remove {
		m.active.Delete(outpoint)
	}

	m.logger.Debugf("[Memory] removed %d %s utxos", len(remove), kind)

	return len(remove), nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.active = swiss.NewMap[model.Outpoint, activeRecord](initialCapacity)
	m.spent = swiss.NewMap[model.Outpoint, *model.SpentRecord](initialCapacity)
	m.txs = txmap.NewSyncedMap[chainhash.Hash, []byte]()
	m.seq = 0

	return nil
}

func (m *Memory) Stats(_ context.Context) (*utxo.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &utxo.Stats{
		Active:       m.active.Count(),
		Spent:        m.spent.Count(),
		Transactions: m.txs.Length(),
		ByKind:       make(map[model.Kind]int),
	}

	m.active.Iter(func(_ model.Outpoint, record activeRecord) bool {
		stats.ByKind[record.entry.Kind()]++
		return false
	})

	return stats, nil
}
