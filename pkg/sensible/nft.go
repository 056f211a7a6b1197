package sensible

import (
	"encoding/hex"
)

const NftDataLen = 109

const (
	nftTokenIndexOffset  = ProtoHeaderLen + 8
	nftTotalSupplyOffset = nftTokenIndexOffset + 8
	nftSensibleIDOffset  = nftTotalSupplyOffset + SensibleIDLen
	nftAddressOffset     = nftSensibleIDOffset + AddressLen
	nftGenesisOffset     = nftAddressOffset + HashLen
	nftGenesisFlagPos    = nftGenesisOffset + 1
)

type NftDataPart struct {
	GenesisFlag  uint8
	GenesisHash  []byte
	NftAddress   []byte
	SensibleID   SensibleID
	TotalSupply  uint64
	TokenIndex   uint64
	ProtoVersion uint32
}

func ParseNftDataPart(script []byte) (*NftDataPart, error) {
	if err := checkLen(script, NftDataLen, ProtoTypeNFT); err != nil {
		return nil, err
	}

	return &NftDataPart{
		GenesisFlag:  script[len(script)-nftGenesisFlagPos],
		GenesisHash:  tail(script, nftGenesisOffset, nftAddressOffset),
		NftAddress:   tail(script, nftAddressOffset, nftSensibleIDOffset),
		SensibleID:   parseSensibleID(tail(script, nftSensibleIDOffset, nftTotalSupplyOffset)),
		TotalSupply:  tailUint64(script, nftTotalSupplyOffset),
		TokenIndex:   tailUint64(script, nftTokenIndexOffset),
		ProtoVersion: GetProtoVersion(script),
	}, nil
}

func GetNftQueryCodehash(script []byte) (string, error) {
	if err := checkLen(script, NftDataLen, ProtoTypeNFT); err != nil {
		return "", err
	}

	return codehash(script, NftDataLen), nil
}

func GetNftQueryGenesis(script []byte) (string, error) {
	if err := checkLen(script, NftDataLen, ProtoTypeNFT); err != nil {
		return "", err
	}

	return hex.EncodeToString(tail(script, nftGenesisOffset, nftAddressOffset)), nil
}
