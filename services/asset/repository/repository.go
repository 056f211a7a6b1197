// Package repository provides the read-only queries over the utxo store.
package repository

import (
	"context"
	"math/big"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/model"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo"
	"github.com/bsv-blockchain/mockindexer/ulogger"
)

type Interface interface {
	Health(ctx context.Context) (int, string, error)
	GetUtxos(ctx context.Context, address string) ([]*Utxo, error)
	GetRawTx(ctx context.Context, txID string) ([]byte, error)
	GetTokenUtxos(ctx context.Context, codehash, genesis, address string, params *QueryParams) ([]*TokenUtxo, error)
	GetNftUtxos(ctx context.Context, codehash, genesis, address string, params *QueryParams) ([]*NftUtxo, error)
	GetNftUtxo(ctx context.Context, codehash, genesis, tokenIndex string) (*NftUtxo, error)
	GetTokenBalance(ctx context.Context, codehash, genesis, address string) (*TokenBalance, error)
	GetNftSellUtxoDetail(ctx context.Context, codehash, genesis, tokenIndex string, params *SellQueryParams) ([]*NftSellDetail, error)
	GetIsUtxoSpent(ctx context.Context, txID string, vout uint32) (bool, error)
	GetBalance(ctx context.Context, address string) (*Balance, error)
	GetTokenList(ctx context.Context, address string, params *QueryParams) ([]*Token, error)
	GetNftCollectionList(ctx context.Context, address string, params *QueryParams) ([]*NftCollection, error)
}

type Repository struct {
	logger    ulogger.Logger
	settings  *settings.Settings
	UtxoStore utxo.Store
}

func NewRepository(logger ulogger.Logger, tSettings *settings.Settings, utxoStore utxo.Store) (*Repository, error) {
	if utxoStore == nil {
		return nil, errors.NewConfigurationError("utxo store is required")
	}

	return &Repository{
		logger:    logger,
		settings:  tSettings,
		UtxoStore: utxoStore,
	}, nil
}

func (repo *Repository) Health(ctx context.Context) (int, string, error) {
	return repo.UtxoStore.Health(ctx)
}

// GetUtxos returns the plain outputs held by address.
func (repo *Repository) GetUtxos(ctx context.Context, address string) ([]*Utxo, error) {
	entries, err := repo.UtxoStore.GetByAddress(ctx, model.KindPlain, address)
	if err != nil {
		return nil, err
	}

	utxos := make([]*Utxo, 0, len(entries))

	for _, entry := range entries {
		utxos = append(utxos, &Utxo{
			TxID:        entry.TxID.String(),
			OutputIndex: entry.Vout,
			Satoshis:    entry.Satoshis,
			Address:     entry.Address(),
		})
	}

	return utxos, nil
}

func (repo *Repository) GetRawTx(ctx context.Context, txID string) ([]byte, error) {
	hash, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid txid %q", txID, err)
	}

	return repo.UtxoStore.GetTransaction(ctx, *hash)
}

func (repo *Repository) GetTokenUtxos(ctx context.Context, codehash, genesis, address string, _ *QueryParams) ([]*TokenUtxo, error) {
	entries, err := repo.UtxoStore.GetByToken(ctx, model.KindFungibleToken, codehash, genesis, utxo.WithAddress(address))
	if err != nil {
		return nil, err
	}

	utxos := make([]*TokenUtxo, 0, len(entries))

	for _, entry := range entries {
		ft, ok := entry.Data.(*model.FungibleToken)
		if !ok {
			continue
		}

		utxos = append(utxos, &TokenUtxo{
			TxID:         entry.TxID.String(),
			OutputIndex:  entry.Vout,
			TokenAddress: ft.Address,
			TokenAmount:  amountString(ft.Amount),
		})
	}

	return utxos, nil
}

func (repo *Repository) GetNftUtxos(ctx context.Context, codehash, genesis, address string, _ *QueryParams) ([]*NftUtxo, error) {
	entries, err := repo.UtxoStore.GetByToken(ctx, model.KindNonFungibleToken, codehash, genesis, utxo.WithAddress(address))
	if err != nil {
		return nil, err
	}

	return nftUtxos(entries), nil
}

// GetNftUtxo returns the first NFT output with tokenIndex, nil when there is none.
func (repo *Repository) GetNftUtxo(ctx context.Context, codehash, genesis, tokenIndex string) (*NftUtxo, error) {
	entries, err := repo.UtxoStore.GetByToken(ctx, model.KindNonFungibleToken, codehash, genesis, utxo.WithTokenIndex(tokenIndex))
	if err != nil {
		return nil, err
	}

	utxos := nftUtxos(entries)
	if len(utxos) == 0 {
		return nil, nil
	}

	return utxos[0], nil
}

func (repo *Repository) GetTokenBalance(ctx context.Context, codehash, genesis, address string) (*TokenBalance, error) {
	entries, err := repo.UtxoStore.GetByToken(ctx, model.KindFungibleToken, codehash, genesis, utxo.WithAddress(address))
	if err != nil {
		return nil, err
	}

	balance := new(big.Int)

	for _, entry := range entries {
		if ft, ok := entry.Data.(*model.FungibleToken); ok && ft.Amount != nil {
			balance.Add(balance, ft.Amount)
		}
	}

	return &TokenBalance{
		Balance:        balance.String(),
		PendingBalance: "0",
	}, nil
}

func (repo *Repository) GetNftSellUtxoDetail(ctx context.Context, codehash, genesis, tokenIndex string, _ *SellQueryParams) ([]*NftSellDetail, error) {
	entries, err := repo.UtxoStore.GetByToken(ctx, model.KindSaleListing, codehash, genesis, utxo.WithTokenIndex(tokenIndex))
	if err != nil {
		return nil, err
	}

	details := make([]*NftSellDetail, 0, len(entries))

	for _, entry := range entries {
		sale, ok := entry.Data.(*model.SaleListing)
		if !ok {
			continue
		}

		details = append(details, &NftSellDetail{
			TxID:    entry.TxID.String(),
			Vout:    entry.Vout,
			Address: sale.SellerAddress,
			Price:   sale.Price,
		})
	}

	return details, nil
}

// GetIsUtxoSpent is true only for outpoints in the spent log, active and unknown
// outpoints are both reported as unspent.
func (repo *Repository) GetIsUtxoSpent(ctx context.Context, txID string, vout uint32) (bool, error) {
	outpoint, err := model.NewOutpointFromString(txID, vout)
	if err != nil {
		return false, err
	}

	return repo.UtxoStore.IsSpent(ctx, outpoint)
}

func (repo *Repository) GetBalance(_ context.Context, _ string) (*Balance, error) {
	return nil, errors.ErrUnsupported
}

func (repo *Repository) GetTokenList(_ context.Context, _ string, _ *QueryParams) ([]*Token, error) {
	return nil, errors.ErrUnsupported
}

func (repo *Repository) GetNftCollectionList(_ context.Context, _ string, _ *QueryParams) ([]*NftCollection, error) {
	return nil, errors.ErrUnsupported
}

func nftUtxos(entries []*model.UtxoEntry) []*NftUtxo {
	utxos := make([]*NftUtxo, 0, len(entries))

	for _, entry := range entries {
		nft, ok := entry.Data.(*model.NonFungibleToken)
		if !ok {
			continue
		}

		utxos = append(utxos, &NftUtxo{
			TxID:         entry.TxID.String(),
			OutputIndex:  entry.Vout,
			TokenAddress: nft.Address,
			TokenIndex:   nft.TokenIndex,
		})
	}

	return utxos
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}

	return amount.String()
}
