package provider

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"

	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/pkg/sensible"
	"github.com/bsv-blockchain/mockindexer/services/asset/repository"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo/memory"
	"github.com/bsv-blockchain/mockindexer/ulogger"
	"github.com/bsv-blockchain/mockindexer/util/test/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T) *MockProvider {
	tSettings := &settings.Settings{ChainCfgParams: &chaincfg.TestNetParams}

	p, err := New(ulogger.TestLogger{}, tSettings, memory.New(ulogger.TestLogger{}))
	require.NoError(t, err)

	return p
}

func TestBroadcastAndQuery(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)

	privA := fixtures.NewPrivateKey(t)
	privB := fixtures.NewPrivateKey(t)
	addressA := fixtures.Address(t, privA, false)
	addressB := fixtures.Address(t, privB, false)

	t1 := fixtures.Create(t, fixtures.WithPrivateKey(privA), fixtures.WithP2PKHOutputs(1, 1000))

	txID, err := p.Broadcast(ctx, t1.String())
	require.NoError(t, err)
	assert.Equal(t, t1.TxID(), txID)

	utxos, err := p.GetUtxos(ctx, addressA)
	require.NoError(t, err)
	assert.Equal(t, []*repository.Utxo{{TxID: t1.TxID(), OutputIndex: 0, Satoshis: 1000, Address: addressA}}, utxos)

	t2 := fixtures.Create(t, fixtures.WithInput(t1, 0, privA), fixtures.WithP2PKHOutputs(1, 1000, privB.PubKey()))

	_, err = p.PushTx(ctx, t2.String())
	require.NoError(t, err)

	utxos, err = p.GetUtxos(ctx, addressA)
	require.NoError(t, err)
	assert.Empty(t, utxos)

	utxos, err = p.GetUtxos(ctx, addressB)
	require.NoError(t, err)
	assert.Equal(t, []*repository.Utxo{{TxID: t2.TxID(), OutputIndex: 0, Satoshis: 1000, Address: addressB}}, utxos)

	spent, err := p.GetIsUtxoSpent(ctx, t1.TxID(), 0)
	require.NoError(t, err)
	assert.True(t, spent)

	raw, err := p.GetRawTx(ctx, t2.TxID())
	require.NoError(t, err)
	assert.Equal(t, t2.Bytes(), raw)

	_, err = p.BroadcastBytes(ctx, t2.Bytes())
	require.ErrorIs(t, err, errors.ErrTxMissingInput)
}

func TestBroadcastInvalidHex(t *testing.T) {
	_, err := newProvider(t).Broadcast(context.Background(), "not hex")
	require.ErrorIs(t, err, errors.ErrTxMalformed)
}

func TestTokenFlow(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)

	privA := fixtures.NewPrivateKey(t)
	addressA := fixtures.Address(t, privA, false)
	genesisHash := bytes.Repeat([]byte{0xab}, 20)

	ft := &sensible.FtDataPart{TokenName: "token", GenesisHash: genesisHash, TokenAddress: fixtures.PubKeyHash(privA), TokenAmount: 700}
	nft := &sensible.NftDataPart{GenesisHash: genesisHash, NftAddress: fixtures.PubKeyHash(privA), TokenIndex: 3, TotalSupply: 10}

	issue := fixtures.Create(t,
		fixtures.WithPrivateKey(privA),
		fixtures.WithFtOutput(546, ft),
		fixtures.WithNftOutput(546, nft),
		fixtures.WithP2PKHOutputs(1, 5000),
	)

	_, err := p.BroadcastBytes(ctx, issue.Bytes())
	require.NoError(t, err)

	ftCodehash, err := sensible.GetFtQueryCodehash(*issue.Outputs[0].LockingScript)
	require.NoError(t, err)

	nftCodehash, err := sensible.GetNftQueryCodehash(*issue.Outputs[1].LockingScript)
	require.NoError(t, err)

	genesis := hex.EncodeToString(genesisHash)

	tokenUtxos, err := p.GetTokenUtxos(ctx, ftCodehash, genesis, addressA, nil)
	require.NoError(t, err)
	require.Len(t, tokenUtxos, 1)
	assert.Equal(t, "700", tokenUtxos[0].TokenAmount)

	balance, err := p.GetTokenBalance(ctx, ftCodehash, genesis, addressA)
	require.NoError(t, err)
	assert.Equal(t, "700", balance.Balance)

	nftUtxo, err := p.GetNftUtxo(ctx, nftCodehash, genesis, "3")
	require.NoError(t, err)
	require.NotNil(t, nftUtxo)
	assert.Equal(t, addressA, nftUtxo.TokenAddress)
	assert.Equal(t, uint32(1), nftUtxo.OutputIndex)

	removed, err := p.CleanBsvUtxos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	utxos, err := p.GetUtxos(ctx, addressA)
	require.NoError(t, err)
	assert.Empty(t, utxos)

	tokenUtxos, err = p.GetTokenUtxos(ctx, ftCodehash, genesis, addressA, nil)
	require.NoError(t, err)
	assert.Len(t, tokenUtxos, 1)

	require.NoError(t, p.CleanCaches(ctx))

	stats, err := p.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, 0, stats.Transactions)

	// after a reset the issuance can be replayed
	_, err = p.BroadcastBytes(ctx, issue.Bytes())
	require.NoError(t, err)
}

func TestPushTxUsesSameTransition(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)

	tx := fixtures.Create(t, fixtures.WithPrivateKey(fixtures.NewPrivateKey(t)), fixtures.WithP2PKHOutputs(1, 1))

	_, err := p.PushTx(ctx, tx.String())
	require.NoError(t, err)

	_, err = p.Broadcast(ctx, tx.String())
	require.ErrorIs(t, err, errors.ErrTxAlreadyExists)
}
