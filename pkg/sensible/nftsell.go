package sensible

const NftSellDataLen = 112

const (
	sellNftIDOffset      = ProtoHeaderLen + 20
	sellPriceOffset      = sellNftIDOffset + 8
	sellSellerOffset     = sellPriceOffset + AddressLen
	sellTokenIndexOffset = sellSellerOffset + 8
	sellGenesisOffset    = sellTokenIndexOffset + HashLen
	sellCodehashOffset   = sellGenesisOffset + HashLen
)

// NftSellDataPart describes an NFT listed for sale. Unlike FT and NFT scripts the listing
// names the codehash and genesis of the token it sells directly.
type NftSellDataPart struct {
	Codehash      []byte
	Genesis       []byte
	TokenIndex    uint64
	SellerAddress []byte
	SatoshisPrice uint64
	NftID         []byte
	ProtoVersion  uint32
}

func ParseNftSellDataPart(script []byte) (*NftSellDataPart, error) {
	if err := checkLen(script, NftSellDataLen, ProtoTypeNFTSell); err != nil {
		return nil, err
	}

	return &NftSellDataPart{
		Codehash:      tail(script, sellCodehashOffset, sellGenesisOffset),
		Genesis:       tail(script, sellGenesisOffset, sellTokenIndexOffset),
		TokenIndex:    tailUint64(script, sellTokenIndexOffset),
		SellerAddress: tail(script, sellSellerOffset, sellPriceOffset),
		SatoshisPrice: tailUint64(script, sellPriceOffset),
		NftID:         tail(script, sellNftIDOffset, ProtoHeaderLen),
		ProtoVersion:  GetProtoVersion(script),
	}, nil
}
