// Package provider exposes the indexer to Go callers through the same method set an
// indexing service client offers, backed by the processor and the repository.
package provider

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/model"
	"github.com/bsv-blockchain/mockindexer/services/asset/repository"
	"github.com/bsv-blockchain/mockindexer/services/processor"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo"
	"github.com/bsv-blockchain/mockindexer/ulogger"
)

type Interface interface {
	repository.Interface

	Broadcast(ctx context.Context, txHex string) (string, error)
	PushTx(ctx context.Context, txHex string) (string, error)
	BroadcastBytes(ctx context.Context, raw []byte) (string, error)
	CleanCaches(ctx context.Context) error
	CleanBsvUtxos(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*utxo.Stats, error)
}

type MockProvider struct {
	*repository.Repository

	logger    ulogger.Logger
	processor *processor.Processor
	store     utxo.Store
}

var _ Interface = (*MockProvider)(nil)

func New(logger ulogger.Logger, tSettings *settings.Settings, store utxo.Store, opts ...processor.Option) (*MockProvider, error) {
	repo, err := repository.NewRepository(logger, tSettings, store)
	if err != nil {
		return nil, err
	}

	p, err := processor.New(logger, tSettings, store, opts...)
	if err != nil {
		return nil, err
	}

	return &MockProvider{
		Repository: repo,
		logger:     logger,
		processor:  p,
		store:      store,
	}, nil
}

// Broadcast processes a hex encoded transaction and returns its txid.
func (m *MockProvider) Broadcast(ctx context.Context, txHex string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(txHex))
	if err != nil {
		return "", errors.NewTxMalformedError("transaction is not valid hex", err)
	}

	return m.BroadcastBytes(ctx, raw)
}

func (m *MockProvider) PushTx(ctx context.Context, txHex string) (string, error) {
	return m.Broadcast(ctx, txHex)
}

func (m *MockProvider) BroadcastBytes(ctx context.Context, raw []byte) (string, error) {
	txID, err := m.processor.Process(ctx, raw)
	if err != nil {
		return "", err
	}

	return txID.String(), nil
}

// CleanCaches drops every output, spend and archived transaction.
func (m *MockProvider) CleanCaches(ctx context.Context) error {
	m.logger.Infof("[MockProvider] resetting store")
	return m.processor.Reset(ctx)
}

// CleanBsvUtxos drops the active plain outputs and leaves token outputs in place.
func (m *MockProvider) CleanBsvUtxos(ctx context.Context) (int, error) {
	removed, err := m.processor.RemoveByKind(ctx, model.KindPlain)
	if err != nil {
		return 0, err
	}

	m.logger.Infof("[MockProvider] removed %d plain utxos", removed)

	return removed, nil
}

func (m *MockProvider) Stats(ctx context.Context) (*utxo.Stats, error) {
	return m.store.Stats(ctx)
}
