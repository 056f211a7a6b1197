package repository

import (
	"context"
	"math/big"
	"math/rand"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/model"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo/memory"
	"github.com/bsv-blockchain/mockindexer/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Interface = (*Repository)(nil)

const (
	codehash = "0d0fc08db6e04867b2a1e0e3e08a2e9c2b5f0b62"
	genesis  = "00112233445566778899aabbccddeeff00112233"
	addressA = "1FuzhVa9sF9kPo7fmQAqfxXMDPZzPjZS9H"
	addressB = "1GXNp2shmFZjkN3oadZRdEmVYzKw9CTzbn"
)

var (
	txHash1, _ = chainhash.NewHashFromStr("5e3bc5947f48cec766090aa17f309fd16259de029dcef5d306b514848c9687c7")
	txHash2, _ = chainhash.NewHashFromStr("663bc5947f48cec766090aa17f309fd16259de029dcef5d306b514848c9687c8")
)

func setup(t *testing.T) (*Repository, *memory.Memory) {
	store := memory.New(ulogger.TestLogger{})

	repo, err := NewRepository(ulogger.TestLogger{}, &settings.Settings{}, store)
	require.NoError(t, err)

	return repo, store
}

func insert(t *testing.T, store *memory.Memory, txID *chainhash.Hash, vout uint32, satoshis uint64, data model.UtxoData) {
	require.NoError(t, store.Insert(context.Background(), &model.UtxoEntry{
		Outpoint: model.NewOutpoint(txID, vout),
		Satoshis: satoshis,
		Data:     data,
	}))
}

func TestGetUtxos(t *testing.T) {
	ctx := context.Background()
	repo, store := setup(t)

	insert(t, store, txHash1, 0, 1000, &model.Plain{Address: addressA})
	insert(t, store, txHash1, 1, 2000, &model.Plain{Address: addressB})
	insert(t, store, txHash1, 2, 546, &model.FungibleToken{Codehash: codehash, Genesis: genesis, Address: addressA, Amount: big.NewInt(1)})

	utxos, err := repo.GetUtxos(ctx, addressA)
	require.NoError(t, err)
	require.Len(t, utxos, 1)
	assert.Equal(t, &Utxo{TxID: txHash1.String(), OutputIndex: 0, Satoshis: 1000, Address: addressA}, utxos[0])

	utxos, err = repo.GetUtxos(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, utxos)
}

func TestGetTokenUtxosAndBalance(t *testing.T) {
	ctx := context.Background()
	repo, store := setup(t)

	// #nosec G404
	rnd := rand.New(rand.NewSource(42))

	expected := new(big.Int)

	for vout := uint32(0); vout < 20; vout++ {
		// amounts up to 2^80 so the sum leaves the 64 bit range
		amount := new(big.Int).Rand(rnd, new(big.Int).Lsh(big.NewInt(1), 80))

		address := addressA
		if vout%3 == 0 {
			address = addressB
		} else {
			expected.Add(expected, amount)
		}

		insert(t, store, txHash1, vout, 546, &model.FungibleToken{Codehash: codehash, Genesis: genesis, Address: address, Amount: amount})
	}

	// same holder, other token
	insert(t, store, txHash2, 0, 546, &model.FungibleToken{Codehash: codehash, Genesis: "other", Address: addressA, Amount: big.NewInt(99)})

	balance, err := repo.GetTokenBalance(ctx, codehash, genesis, addressA)
	require.NoError(t, err)
	assert.Equal(t, expected.String(), balance.Balance)
	assert.Equal(t, "0", balance.PendingBalance)
	assert.Equal(t, 0, balance.UtxoCount)
	assert.Equal(t, 0, balance.Decimal)

	utxos, err := repo.GetTokenUtxos(ctx, codehash, genesis, addressA, &QueryParams{Cursor: 0, Size: 1})
	require.NoError(t, err)
	// size is accepted but not applied
	assert.Len(t, utxos, 13)

	sum := new(big.Int)

	for _, u := range utxos {
		assert.Equal(t, addressA, u.TokenAddress)

		amount, ok := new(big.Int).SetString(u.TokenAmount, 10)
		require.True(t, ok)
		sum.Add(sum, amount)
	}

	assert.Equal(t, 0, expected.Cmp(sum))

	balance, err = repo.GetTokenBalance(ctx, codehash, genesis, "nobody")
	require.NoError(t, err)
	assert.Equal(t, "0", balance.Balance)
}

func TestGetNftUtxos(t *testing.T) {
	ctx := context.Background()
	repo, store := setup(t)

	insert(t, store, txHash1, 0, 546, &model.NonFungibleToken{Codehash: codehash, Genesis: genesis, Address: addressA, TokenIndex: "0"})
	insert(t, store, txHash1, 1, 546, &model.NonFungibleToken{Codehash: codehash, Genesis: genesis, Address: addressA, TokenIndex: "1"})
	insert(t, store, txHash1, 2, 546, &model.NonFungibleToken{Codehash: codehash, Genesis: genesis, Address: addressB, TokenIndex: "2"})

	utxos, err := repo.GetNftUtxos(ctx, codehash, genesis, addressA, nil)
	require.NoError(t, err)
	require.Len(t, utxos, 2)
	assert.Equal(t, "0", utxos[0].TokenIndex)
	assert.Equal(t, "1", utxos[1].TokenIndex)
	assert.Equal(t, uint32(0), utxos[0].MetaOutputIndex)
	assert.Equal(t, "", utxos[0].MetaTxID)

	utxo, err := repo.GetNftUtxo(ctx, codehash, genesis, "2")
	require.NoError(t, err)
	require.NotNil(t, utxo)
	assert.Equal(t, addressB, utxo.TokenAddress)
	assert.Equal(t, uint32(2), utxo.OutputIndex)

	utxo, err = repo.GetNftUtxo(ctx, codehash, genesis, "3")
	require.NoError(t, err)
	assert.Nil(t, utxo)
}

func TestGetNftSellUtxoDetail(t *testing.T) {
	ctx := context.Background()
	repo, store := setup(t)

	insert(t, store, txHash1, 0, 546, &model.SaleListing{Codehash: codehash, Genesis: genesis, TokenIndex: "5", SellerAddress: addressA, Price: 10000})
	insert(t, store, txHash1, 1, 546, &model.NonFungibleToken{Codehash: codehash, Genesis: genesis, Address: addressA, TokenIndex: "5"})

	details, err := repo.GetNftSellUtxoDetail(ctx, codehash, genesis, "5", &SellQueryParams{Ready: true})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, &NftSellDetail{TxID: txHash1.String(), Vout: 0, Address: addressA, Price: 10000}, details[0])

	details, err = repo.GetNftSellUtxoDetail(ctx, codehash, genesis, "6", nil)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestGetIsUtxoSpent(t *testing.T) {
	ctx := context.Background()
	repo, store := setup(t)

	insert(t, store, txHash1, 0, 1000, &model.Plain{Address: addressA})
	require.NoError(t, store.RecordSpent(ctx, &model.SpentRecord{Outpoint: model.NewOutpoint(txHash2, 1), SpendingTxID: *txHash1}))

	spent, err := repo.GetIsUtxoSpent(ctx, txHash2.String(), 1)
	require.NoError(t, err)
	assert.True(t, spent)

	// active
	spent, err = repo.GetIsUtxoSpent(ctx, txHash1.String(), 0)
	require.NoError(t, err)
	assert.False(t, spent)

	// never seen
	spent, err = repo.GetIsUtxoSpent(ctx, txHash1.String(), 9)
	require.NoError(t, err)
	assert.False(t, spent)

	_, err = repo.GetIsUtxoSpent(ctx, "not-a-txid", 0)
	require.ErrorIs(t, err, errors.ErrInvalidArgument)
}

func TestGetRawTx(t *testing.T) {
	ctx := context.Background()
	repo, store := setup(t)

	require.NoError(t, store.ArchiveTransaction(ctx, *txHash1, []byte{0x01, 0x02}))

	raw, err := repo.GetRawTx(ctx, txHash1.String())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, raw)

	_, err = repo.GetRawTx(ctx, txHash2.String())
	require.ErrorIs(t, err, errors.ErrTxNotFound)

	_, err = repo.GetRawTx(ctx, "zz")
	require.ErrorIs(t, err, errors.ErrInvalidArgument)
}

func TestUnsupported(t *testing.T) {
	ctx := context.Background()
	repo, _ := setup(t)

	_, err := repo.GetBalance(ctx, addressA)
	require.ErrorIs(t, err, errors.ErrUnsupported)

	_, err = repo.GetTokenList(ctx, addressA, nil)
	require.ErrorIs(t, err, errors.ErrUnsupported)

	_, err = repo.GetNftCollectionList(ctx, addressA, nil)
	require.ErrorIs(t, err, errors.ErrUnsupported)
}
