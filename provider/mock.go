package provider

import (
	"context"

	"github.com/bsv-blockchain/mockindexer/services/asset/repository"
	"github.com/bsv-blockchain/mockindexer/stores/utxo"
	"github.com/stretchr/testify/mock"
)

var _ Interface = (*Mock)(nil)

type Mock struct {
	mock.Mock
}

func (m *Mock) Health(_ context.Context) (int, string, error) {
	args := m.Called()
	return args.Int(0), args.String(1), args.Error(2)
}

func (m *Mock) GetUtxos(_ context.Context, address string) ([]*repository.Utxo, error) {
	args := m.Called(address)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.Utxo), nil
}

func (m *Mock) GetRawTx(_ context.Context, txID string) ([]byte, error) {
	args := m.Called(txID)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), nil
}

func (m *Mock) GetTokenUtxos(_ context.Context, codehash, genesis, address string, params *repository.QueryParams) ([]*repository.TokenUtxo, error) {
	args := m.Called(codehash, genesis, address, params)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.TokenUtxo), nil
}

func (m *Mock) GetNftUtxos(_ context.Context, codehash, genesis, address string, params *repository.QueryParams) ([]*repository.NftUtxo, error) {
	args := m.Called(codehash, genesis, address, params)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.NftUtxo), nil
}

func (m *Mock) GetNftUtxo(_ context.Context, codehash, genesis, tokenIndex string) (*repository.NftUtxo, error) {
	args := m.Called(codehash, genesis, tokenIndex)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	if args.Get(0) == nil {
		return nil, nil
	}

	return args.Get(0).(*repository.NftUtxo), nil
}

func (m *Mock) GetTokenBalance(_ context.Context, codehash, genesis, address string) (*repository.TokenBalance, error) {
	args := m.Called(codehash, genesis, address)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*repository.TokenBalance), nil
}

func (m *Mock) GetNftSellUtxoDetail(_ context.Context, codehash, genesis, tokenIndex string, params *repository.SellQueryParams) ([]*repository.NftSellDetail, error) {
	args := m.Called(codehash, genesis, tokenIndex, params)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.NftSellDetail), nil
}

func (m *Mock) GetIsUtxoSpent(_ context.Context, txID string, vout uint32) (bool, error) {
	args := m.Called(txID, vout)
	return args.Bool(0), args.Error(1)
}

func (m *Mock) GetBalance(_ context.Context, address string) (*repository.Balance, error) {
	args := m.Called(address)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*repository.Balance), nil
}

func (m *Mock) GetTokenList(_ context.Context, address string, params *repository.QueryParams) ([]*repository.Token, error) {
	args := m.Called(address, params)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.Token), nil
}

func (m *Mock) GetNftCollectionList(_ context.Context, address string, params *repository.QueryParams) ([]*repository.NftCollection, error) {
	args := m.Called(address, params)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.NftCollection), nil
}

func (m *Mock) Broadcast(_ context.Context, txHex string) (string, error) {
	args := m.Called(txHex)
	return args.String(0), args.Error(1)
}

func (m *Mock) PushTx(_ context.Context, txHex string) (string, error) {
	args := m.Called(txHex)
	return args.String(0), args.Error(1)
}

func (m *Mock) BroadcastBytes(_ context.Context, raw []byte) (string, error) {
	args := m.Called(raw)
	return args.String(0), args.Error(1)
}

func (m *Mock) CleanCaches(_ context.Context) error {
	args := m.Called()
	return args.Error(0)
}

func (m *Mock) CleanBsvUtxos(_ context.Context) (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *Mock) Stats(_ context.Context) (*utxo.Stats, error) {
	args := m.Called()

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*utxo.Stats), nil
}
