package sensible

import (
	"bytes"
	"encoding/hex"
	"testing"

	hash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var code = []byte{0x00, 0x6a, 0x51, 0x52, 0x53}

func TestGetProtoType(t *testing.T) {
	ft := &FtDataPart{TokenAmount: 1}
	nft := &NftDataPart{TokenIndex: 1}
	sell := &NftSellDataPart{SatoshisPrice: 1}

	assert.Equal(t, ProtoTypeFT, GetProtoType(BuildScript(code, ft.Bytes())))
	assert.Equal(t, ProtoTypeNFT, GetProtoType(BuildScript(code, nft.Bytes())))
	assert.Equal(t, ProtoTypeNFTSell, GetProtoType(BuildScript(code, sell.Bytes())))

	assert.Equal(t, ProtoTypeNone, GetProtoType(nil))
	assert.Equal(t, ProtoTypeNone, GetProtoType([]byte("sensible")))
	assert.Equal(t, ProtoTypeNone, GetProtoType(bytes.Repeat([]byte{0x51}, 40)))

	assert.Equal(t, "NFT_SELL", ProtoTypeNFTSell.String())
	assert.Equal(t, "NONE", ProtoType(42).String())
}

func TestFtDataPart(t *testing.T) {
	genesisHash := bytes.Repeat([]byte{0x11}, 20)
	address := bytes.Repeat([]byte{0x22}, 20)

	want := &FtDataPart{
		TokenName:                "Test Token",
		TokenSymbol:              "TT",
		Decimal:                  8,
		GenesisFlag:              0,
		GenesisHash:              genesisHash,
		RabinPubKeyHashArrayHash: bytes.Repeat([]byte{0x33}, 20),
		SensibleID:               SensibleID{TxID: bytes.Repeat([]byte{0x44}, 32), Index: 2},
		TokenAddress:             address,
		TokenAmount:              1_000_000,
		ProtoVersion:             1,
	}

	data := want.Bytes()
	require.Len(t, data, FtDataLen)

	script := BuildScript(code, data)

	got, err := ParseFtDataPart(script)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	codehash, err := GetFtQueryCodehash(script)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(hash.Hash160(code)), codehash)

	genesis, err := GetFtQueryGenesis(script)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(genesisHash), genesis)
}

func TestNftDataPart(t *testing.T) {
	want := &NftDataPart{
		GenesisFlag:  0,
		GenesisHash:  bytes.Repeat([]byte{0x55}, 20),
		NftAddress:   bytes.Repeat([]byte{0x66}, 20),
		SensibleID:   SensibleID{TxID: bytes.Repeat([]byte{0x77}, 32), Index: 0},
		TotalSupply:  100,
		TokenIndex:   7,
		ProtoVersion: 1,
	}

	data := want.Bytes()
	require.Len(t, data, NftDataLen)

	script := BuildScript(code, data)

	got, err := ParseNftDataPart(script)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	codehash, err := GetNftQueryCodehash(script)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(hash.Hash160(code)), codehash)

	genesis, err := GetNftQueryGenesis(script)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want.GenesisHash), genesis)
}

func TestNftSellDataPart(t *testing.T) {
	want := &NftSellDataPart{
		Codehash:      bytes.Repeat([]byte{0x01}, 20),
		Genesis:       bytes.Repeat([]byte{0x02}, 20),
		TokenIndex:    3,
		SellerAddress: bytes.Repeat([]byte{0x04}, 20),
		SatoshisPrice: 5000,
		NftID:         bytes.Repeat([]byte{0x06}, 20),
		ProtoVersion:  1,
	}

	data := want.Bytes()
	require.Len(t, data, NftSellDataLen)

	got, err := ParseNftSellDataPart(BuildScript(code, data))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTruncatedScripts(t *testing.T) {
	ft := (&FtDataPart{}).Bytes()

	// keep the trailer but drop most of the data part
	truncated := ft[len(ft)-ProtoHeaderLen-10:]
	require.Equal(t, ProtoTypeFT, GetProtoType(truncated))

	_, err := ParseFtDataPart(truncated)
	require.Error(t, err)

	_, err = GetFtQueryCodehash(truncated)
	require.Error(t, err)

	// wrong type
	_, err = ParseNftDataPart(BuildScript(code, ft))
	require.Error(t, err)

	_, err = ParseNftSellDataPart(BuildScript(code, ft))
	require.Error(t, err)
}
