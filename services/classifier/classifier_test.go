package classifier

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/mockindexer/model"
	"github.com/bsv-blockchain/mockindexer/pkg/sensible"
	"github.com/bsv-blockchain/mockindexer/util/test/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyP2PKH(t *testing.T) {
	privKey := fixtures.NewPrivateKey(t)

	script, err := bscript.NewP2PKHFromPubKeyBytes(privKey.PubKey().Compressed())
	require.NoError(t, err)

	data := NewForNetwork(true).Classify(script)
	require.Equal(t, model.KindPlain, data.Kind())
	assert.Equal(t, fixtures.Address(t, privKey, true), data.(*model.Plain).Address)

	data = NewForNetwork(false).Classify(script)
	assert.Equal(t, fixtures.Address(t, privKey, false), data.(*model.Plain).Address)
}

func TestClassifyFungibleToken(t *testing.T) {
	privKey := fixtures.NewPrivateKey(t)
	genesisHash := bytes.Repeat([]byte{0xab}, 20)

	script := fixtures.ProtocolScript((&sensible.FtDataPart{
		TokenName:    "token",
		GenesisHash:  genesisHash,
		TokenAddress: fixtures.PubKeyHash(privKey),
		TokenAmount:  12345,
	}).Bytes())

	data := NewForNetwork(true).Classify(script)
	require.Equal(t, model.KindFungibleToken, data.Kind())

	ft := data.(*model.FungibleToken)

	codehash, err := sensible.GetFtQueryCodehash(*script)
	require.NoError(t, err)

	assert.Equal(t, codehash, ft.Codehash)
	assert.Equal(t, hex.EncodeToString(genesisHash), ft.Genesis)
	assert.Equal(t, fixtures.Address(t, privKey, true), ft.Address)
	assert.Equal(t, 0, big.NewInt(12345).Cmp(ft.Amount))
}

func TestClassifyNonFungibleToken(t *testing.T) {
	privKey := fixtures.NewPrivateKey(t)

	script := fixtures.ProtocolScript((&sensible.NftDataPart{
		GenesisHash: bytes.Repeat([]byte{0xcd}, 20),
		NftAddress:  fixtures.PubKeyHash(privKey),
		TotalSupply: 10,
		TokenIndex:  4,
	}).Bytes())

	data := NewForNetwork(false).Classify(script)
	require.Equal(t, model.KindNonFungibleToken, data.Kind())

	nft := data.(*model.NonFungibleToken)
	assert.Equal(t, "4", nft.TokenIndex)
	assert.Equal(t, fixtures.Address(t, privKey, false), nft.Address)
	assert.Equal(t, hex.EncodeToString(bytes.Repeat([]byte{0xcd}, 20)), nft.Genesis)
}

func TestClassifySaleListing(t *testing.T) {
	privKey := fixtures.NewPrivateKey(t)
	codehash := bytes.Repeat([]byte{0x01}, 20)
	genesis := bytes.Repeat([]byte{0x02}, 20)

	script := fixtures.ProtocolScript((&sensible.NftSellDataPart{
		Codehash:      codehash,
		Genesis:       genesis,
		TokenIndex:    9,
		SellerAddress: fixtures.PubKeyHash(privKey),
		SatoshisPrice: 2500,
	}).Bytes())

	data := NewForNetwork(true).Classify(script)
	require.Equal(t, model.KindSaleListing, data.Kind())

	sell := data.(*model.SaleListing)
	assert.Equal(t, hex.EncodeToString(codehash), sell.Codehash)
	assert.Equal(t, hex.EncodeToString(genesis), sell.Genesis)
	assert.Equal(t, "9", sell.TokenIndex)
	assert.Equal(t, fixtures.Address(t, privKey, true), sell.SellerAddress)
	assert.Equal(t, uint64(2500), sell.Price)
}

func TestClassifyUnclassified(t *testing.T) {
	c := NewForNetwork(true)

	unique := fixtures.ProtocolScript((&sensible.FtDataPart{}).Bytes())
	uniqueBytes := []byte(*unique)
	// rewrite the type field to UNIQUE, which has no decoder
	uniqueBytes[len(uniqueBytes)-12] = byte(sensible.ProtoTypeUnique)

	ft := (&sensible.FtDataPart{}).Bytes()

	tests := []struct {
		name   string
		script *bscript.Script
	}{
		{"nil", nil},
		{"empty", bscript.NewFromBytes([]byte{})},
		{"op_return", bscript.NewFromBytes([]byte{0x00, 0x6a, 0x01, 0x02})},
		{"unique", bscript.NewFromBytes(uniqueBytes)},
		{"truncated ft", bscript.NewFromBytes(ft[len(ft)-sensible.ProtoHeaderLen-4:])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, model.KindUnclassified, c.Classify(tt.script).Kind())
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	privKey := fixtures.NewPrivateKey(t)
	c := NewForNetwork(true)

	// the same script in different outputs of different transactions classifies the same
	tx1 := fixtures.Create(t, fixtures.WithPrivateKey(privKey), fixtures.WithP2PKHOutputs(3, 1))
	tx2 := fixtures.Create(t, fixtures.WithPrivateKey(privKey), fixtures.WithP2PKHOutputs(1, 5_000_000))

	want := c.Classify(tx2.Outputs[0].LockingScript)

	for _, out := range tx1.Outputs {
		assert.Equal(t, want, c.Classify(out.LockingScript))
	}
}
