// Package tests holds the behaviour checks every utxo store backend must pass.
package tests

import (
	"context"
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/model"
	utxostore "github.com/bsv-blockchain/mockindexer/stores/utxo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	TXHash, _    = chainhash.NewHashFromStr("5e3bc5947f48cec766090aa17f309fd16259de029dcef5d306b514848c9687c7")
	Hash2, _     = chainhash.NewHashFromStr("663bc5947f48cec766090aa17f309fd16259de029dcef5d306b514848c9687c8")
	p2pkh, _     = bscript.NewFromHexString("76a914a32f7eaae3afd5f73a2d6009b93f91aa11d16eef88ac")
	addressA     = "1FuzhVa9sF9kPo7fmQAqfxXMDPZzPjZS9H"
	addressB     = "1GXNp2shmFZjkN3oadZRdEmVYzKw9CTzbn"
	codehash     = "0d0fc08db6e04867b2a1e0e3e08a2e9c2b5f0b62"
	genesis      = "00112233445566778899aabbccddeeff00112233"
	otherGenesis = "ffeeddccbbaa99887766554433221100ffeeddcc"
)

func plainEntry(txID *chainhash.Hash, vout uint32, address string, satoshis uint64) *model.UtxoEntry {
	return &model.UtxoEntry{
		Outpoint:      model.NewOutpoint(txID, vout),
		Satoshis:      satoshis,
		LockingScript: p2pkh,
		Data:          &model.Plain{Address: address},
	}
}

func ftEntry(txID *chainhash.Hash, vout uint32, g string, address string, amount *big.Int) *model.UtxoEntry {
	return &model.UtxoEntry{
		Outpoint:      model.NewOutpoint(txID, vout),
		Satoshis:      546,
		LockingScript: p2pkh,
		Data:          &model.FungibleToken{Codehash: codehash, Genesis: g, Address: address, Amount: amount},
	}
}

func nftEntry(txID *chainhash.Hash, vout uint32, address string, tokenIndex string) *model.UtxoEntry {
	return &model.UtxoEntry{
		Outpoint:      model.NewOutpoint(txID, vout),
		Satoshis:      546,
		LockingScript: p2pkh,
		Data:          &model.NonFungibleToken{Codehash: codehash, Genesis: genesis, Address: address, TokenIndex: tokenIndex},
	}
}

func sellEntry(txID *chainhash.Hash, vout uint32, seller string, tokenIndex string, price uint64) *model.UtxoEntry {
	return &model.UtxoEntry{
		Outpoint:      model.NewOutpoint(txID, vout),
		Satoshis:      546,
		LockingScript: p2pkh,
		Data: &model.SaleListing{
			Codehash:      codehash,
			Genesis:       genesis,
			TokenIndex:    tokenIndex,
			SellerAddress: seller,
			Price:         price,
		},
	}
}

func Store(t *testing.T, db utxostore.Store) {
	ctx := context.Background()

	entry := plainEntry(TXHash, 0, addressA, 1000)
	require.NoError(t, db.Insert(ctx, entry))

	got, err := db.Get(ctx, entry.Outpoint)
	require.NoError(t, err)
	assert.Equal(t, entry.Outpoint, got.Outpoint)
	assert.Equal(t, uint64(1000), got.Satoshis)
	assert.Equal(t, addressA, got.Address())
	assert.Equal(t, model.KindPlain, got.Kind())
	assert.Equal(t, p2pkh.String(), got.LockingScript.String())

	err = db.Insert(ctx, entry)
	require.ErrorIs(t, err, errors.ErrTxAlreadyExists)

	_, err = db.Get(ctx, model.NewOutpoint(TXHash, 1))
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func Spend(t *testing.T, db utxostore.Store) {
	ctx := context.Background()

	entry := plainEntry(TXHash, 0, addressA, 1000)
	require.NoError(t, db.Insert(ctx, entry))

	removed, err := db.RemoveByOutpoint(ctx, entry.Outpoint)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = db.RemoveByOutpoint(ctx, entry.Outpoint)
	require.NoError(t, err)
	assert.False(t, removed)

	spent, err := db.IsSpent(ctx, entry.Outpoint)
	require.NoError(t, err)
	assert.False(t, spent)

	require.NoError(t, db.RecordSpent(ctx, &model.SpentRecord{
		Outpoint:           entry.Outpoint,
		SpendingTxID:       *Hash2,
		SpendingInputIndex: 0,
	}))

	spent, err = db.IsSpent(ctx, entry.Outpoint)
	require.NoError(t, err)
	assert.True(t, spent)

	// a spent outpoint can never become active again
	err = db.Insert(ctx, entry)
	require.ErrorIs(t, err, errors.ErrTxAlreadyExists)

	_, err = db.Get(ctx, entry.Outpoint)
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func Archive(t *testing.T, db utxostore.Store) {
	ctx := context.Background()

	_, err := db.GetTransaction(ctx, *TXHash)
	require.ErrorIs(t, err, errors.ErrTxNotFound)

	exists, err := db.HasTransaction(ctx, *TXHash)
	require.NoError(t, err)
	assert.False(t, exists)

	raw := []byte{0x01, 0x00, 0x00, 0x00, 0x00}
	require.NoError(t, db.ArchiveTransaction(ctx, *TXHash, raw))

	got, err := db.GetTransaction(ctx, *TXHash)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	// the archive is not shared with callers
	raw[0] = 0x02
	got[1] = 0xff

	got, err = db.GetTransaction(ctx, *TXHash)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x00}, got)

	exists, err = db.HasTransaction(ctx, *TXHash)
	require.NoError(t, err)
	assert.True(t, exists)
}

func GetByAddress(t *testing.T, db utxostore.Store) {
	ctx := context.Background()

	require.NoError(t, db.Insert(ctx, plainEntry(TXHash, 2, addressA, 300)))
	require.NoError(t, db.Insert(ctx, plainEntry(TXHash, 0, addressA, 100)))
	require.NoError(t, db.Insert(ctx, plainEntry(TXHash, 1, addressB, 200)))
	require.NoError(t, db.Insert(ctx, ftEntry(TXHash, 3, genesis, addressA, big.NewInt(5))))

	entries, err := db.GetByAddress(ctx, model.KindPlain, addressA)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(2), entries[0].Vout)
	assert.Equal(t, uint32(0), entries[1].Vout)

	entries, err = db.GetByAddress(ctx, model.KindPlain, "unknown")
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = db.GetByAddress(ctx, model.KindFungibleToken, addressA)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func GetByToken(t *testing.T, db utxostore.Store) {
	ctx := context.Background()

	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	require.NoError(t, db.Insert(ctx, ftEntry(TXHash, 0, genesis, addressA, big.NewInt(10))))
	require.NoError(t, db.Insert(ctx, ftEntry(TXHash, 1, genesis, addressB, huge)))
	require.NoError(t, db.Insert(ctx, ftEntry(TXHash, 2, otherGenesis, addressA, big.NewInt(7))))
	require.NoError(t, db.Insert(ctx, nftEntry(Hash2, 0, addressA, "1")))
	require.NoError(t, db.Insert(ctx, nftEntry(Hash2, 1, addressB, "2")))
	require.NoError(t, db.Insert(ctx, sellEntry(Hash2, 2, addressA, "1", 5000)))

	entries, err := db.GetByToken(ctx, model.KindFungibleToken, codehash, genesis)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = db.GetByToken(ctx, model.KindFungibleToken, codehash, genesis, utxostore.WithAddress(addressB))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	ft, ok := entries[0].Data.(*model.FungibleToken)
	require.True(t, ok)
	assert.Equal(t, 0, huge.Cmp(ft.Amount))

	entries, err = db.GetByToken(ctx, model.KindNonFungibleToken, codehash, genesis, utxostore.WithTokenIndex("2"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, addressB, entries[0].Address())

	entries, err = db.GetByToken(ctx, model.KindSaleListing, codehash, genesis, utxostore.WithTokenIndex("1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	sale, ok := entries[0].Data.(*model.SaleListing)
	require.True(t, ok)
	assert.Equal(t, uint64(5000), sale.Price)
	assert.Equal(t, addressA, sale.SellerAddress)

	entries, err = db.GetByToken(ctx, model.KindSaleListing, codehash, genesis, utxostore.WithTokenIndex("2"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func RemoveByKind(t *testing.T, db utxostore.Store) {
	ctx := context.Background()

	require.NoError(t, db.Insert(ctx, plainEntry(TXHash, 0, addressA, 100)))
	require.NoError(t, db.Insert(ctx, plainEntry(TXHash, 1, addressB, 200)))
	require.NoError(t, db.Insert(ctx, ftEntry(TXHash, 2, genesis, addressA, big.NewInt(1))))
	require.NoError(t, db.RecordSpent(ctx, &model.SpentRecord{Outpoint: model.NewOutpoint(Hash2, 0), SpendingTxID: *TXHash}))

	removed, err := db.RemoveByKind(ctx, model.KindPlain)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Spent)
	assert.Equal(t, 1, stats.ByKind[model.KindFungibleToken])
	assert.Equal(t, 0, stats.ByKind[model.KindPlain])

	// cleaned outpoints are neither active nor spent
	_, err = db.Get(ctx, model.NewOutpoint(TXHash, 0))
	require.ErrorIs(t, err, errors.ErrNotFound)

	spent, err := db.IsSpent(ctx, model.NewOutpoint(TXHash, 0))
	require.NoError(t, err)
	assert.False(t, spent)

	removed, err = db.RemoveByKind(ctx, model.KindPlain)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func Reset(t *testing.T, db utxostore.Store) {
	ctx := context.Background()

	entry := plainEntry(TXHash, 0, addressA, 100)
	require.NoError(t, db.Insert(ctx, entry))
	require.NoError(t, db.RecordSpent(ctx, &model.SpentRecord{Outpoint: model.NewOutpoint(Hash2, 0), SpendingTxID: *TXHash}))
	require.NoError(t, db.ArchiveTransaction(ctx, *TXHash, []byte{0x01}))

	require.NoError(t, db.Reset(ctx))

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, 0, stats.Spent)
	assert.Equal(t, 0, stats.Transactions)

	spent, err := db.IsSpent(ctx, model.NewOutpoint(Hash2, 0))
	require.NoError(t, err)
	assert.False(t, spent)

	// after a reset the same outpoint can be inserted again
	require.NoError(t, db.Insert(ctx, entry))
}

func Health(t *testing.T, db utxostore.Store) {
	status, details, err := db.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.NotEmpty(t, details)
}
