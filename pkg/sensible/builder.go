package sensible

import (
	"encoding/binary"
)

func header(proto ProtoType, version uint32) []byte {
	b := make([]byte, ProtoHeaderLen)
	binary.LittleEndian.PutUint32(b[0:4], version)
	binary.LittleEndian.PutUint32(b[4:8], uint32(proto))
	copy(b[8:], ProtoFlag)

	return b
}

func fixed(b []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, b)

	return out
}

func u64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)

	return b
}

// Bytes serialises the data part in the layout ParseFtDataPart reads.
func (d *FtDataPart) Bytes() []byte {
	b := make([]byte, 0, FtDataLen)
	b = append(b, fixed([]byte(d.TokenName), 40)...)
	b = append(b, fixed([]byte(d.TokenSymbol), 20)...)
	b = append(b, d.Decimal, d.GenesisFlag)
	b = append(b, fixed(d.GenesisHash, HashLen)...)
	b = append(b, fixed(d.RabinPubKeyHashArrayHash, HashLen)...)
	b = append(b, d.SensibleID.Bytes()...)
	b = append(b, fixed(d.TokenAddress, AddressLen)...)
	b = append(b, u64(d.TokenAmount)...)

	return append(b, header(ProtoTypeFT, d.ProtoVersion)...)
}

func (d *NftDataPart) Bytes() []byte {
	b := make([]byte, 0, NftDataLen)
	b = append(b, d.GenesisFlag)
	b = append(b, fixed(d.GenesisHash, HashLen)...)
	b = append(b, fixed(d.NftAddress, AddressLen)...)
	b = append(b, d.SensibleID.Bytes()...)
	b = append(b, u64(d.TotalSupply)...)
	b = append(b, u64(d.TokenIndex)...)

	return append(b, header(ProtoTypeNFT, d.ProtoVersion)...)
}

func (d *NftSellDataPart) Bytes() []byte {
	b := make([]byte, 0, NftSellDataLen)
	b = append(b, fixed(d.Codehash, HashLen)...)
	b = append(b, fixed(d.Genesis, HashLen)...)
	b = append(b, u64(d.TokenIndex)...)
	b = append(b, fixed(d.SellerAddress, AddressLen)...)
	b = append(b, u64(d.SatoshisPrice)...)
	b = append(b, fixed(d.NftID, 20)...)

	return append(b, header(ProtoTypeNFTSell, d.ProtoVersion)...)
}

// BuildScript appends a data part to contract code.
func BuildScript(code []byte, dataPart []byte) []byte {
	script := make([]byte, 0, len(code)+len(dataPart))
	script = append(script, code...)

	return append(script, dataPart...)
}
