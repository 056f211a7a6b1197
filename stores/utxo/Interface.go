// Package utxo defines the store holding the active output set, the spent log and the
// transaction archive. Stores expose primitives only; the processor decides when to call them.
package utxo

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/mockindexer/model"
)

type Stats struct {
	Active       int                `json:"active"`
	Spent        int                `json:"spent"`
	Transactions int                `json:"transactions"`
	ByKind       map[model.Kind]int `json:"byKind"`
}

type Store interface {
	// Health returns an http status code and a description of the backend.
	Health(ctx context.Context) (int, string, error)

	// Insert adds an active entry. An outpoint that is already active or already spent is
	// rejected with ErrTxAlreadyExists.
	Insert(ctx context.Context, entry *model.UtxoEntry) error

	// Get returns the active entry for outpoint, ErrNotFound when it is not active.
	Get(ctx context.Context, outpoint model.Outpoint) (*model.UtxoEntry, error)

	// RemoveByOutpoint reports whether an active entry was removed.
	RemoveByOutpoint(ctx context.Context, outpoint model.Outpoint) (bool, error)

	RecordSpent(ctx context.Context, record *model.SpentRecord) error
	IsSpent(ctx context.Context, outpoint model.Outpoint) (bool, error)

	ArchiveTransaction(ctx context.Context, txID chainhash.Hash, raw []byte) error

	// GetTransaction returns the archived bytes, ErrTxNotFound when unknown.
	GetTransaction(ctx context.Context, txID chainhash.Hash) ([]byte, error)
	HasTransaction(ctx context.Context, txID chainhash.Hash) (bool, error)

	// GetByAddress returns active entries of kind held by address, in insertion order.
	GetByAddress(ctx context.Context, kind model.Kind, address string) ([]*model.UtxoEntry, error)

	// GetByToken returns active entries of kind with the given codehash and genesis, in insertion order.
	GetByToken(ctx context.Context, kind model.Kind, codehash, genesis string, opts ...LookupOption) ([]*model.UtxoEntry, error)

	// RemoveByKind drops every active entry of kind and returns how many were removed.
	// The spent log is not touched.
	RemoveByKind(ctx context.Context, kind model.Kind) (int, error)

	// Reset clears the active set, the spent log and the archive together.
	Reset(ctx context.Context) error

	Stats(ctx context.Context) (*Stats, error)
}
