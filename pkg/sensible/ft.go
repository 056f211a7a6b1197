package sensible

import (
	"encoding/hex"
)

// FtDataLen is the length of the FT data part including the protocol header.
const FtDataLen = 182

const (
	ftAmountOffset     = ProtoHeaderLen + 8
	ftAddressOffset    = ftAmountOffset + AddressLen
	ftSensibleIDOffset = ftAddressOffset + SensibleIDLen
	ftRabinHashOffset  = ftSensibleIDOffset + HashLen
	ftGenesisOffset    = ftRabinHashOffset + HashLen
	ftGenesisFlagPos   = ftGenesisOffset + 1
	ftDecimalPos       = ftGenesisFlagPos + 1
	ftSymbolOffset     = ftDecimalPos + 20
	ftNameOffset       = ftSymbolOffset + 40
)

type FtDataPart struct {
	TokenName                string
	TokenSymbol              string
	Decimal                  uint8
	GenesisFlag              uint8
	GenesisHash              []byte
	RabinPubKeyHashArrayHash []byte
	SensibleID               SensibleID
	TokenAddress             []byte
	TokenAmount              uint64
	ProtoVersion             uint32
}

func ParseFtDataPart(script []byte) (*FtDataPart, error) {
	if err := checkLen(script, FtDataLen, ProtoTypeFT); err != nil {
		return nil, err
	}

	l := len(script)

	return &FtDataPart{
		TokenName:                trimZero(tail(script, ftNameOffset, ftSymbolOffset)),
		TokenSymbol:              trimZero(tail(script, ftSymbolOffset, ftDecimalPos)),
		Decimal:                  script[l-ftDecimalPos],
		GenesisFlag:              script[l-ftGenesisFlagPos],
		GenesisHash:              tail(script, ftGenesisOffset, ftRabinHashOffset),
		RabinPubKeyHashArrayHash: tail(script, ftRabinHashOffset, ftSensibleIDOffset),
		SensibleID:               parseSensibleID(tail(script, ftSensibleIDOffset, ftAddressOffset)),
		TokenAddress:             tail(script, ftAddressOffset, ftAmountOffset),
		TokenAmount:              tailUint64(script, ftAmountOffset),
		ProtoVersion:             GetProtoVersion(script),
	}, nil
}

// GetFtQueryCodehash returns the codehash an indexer files FT outputs under.
func GetFtQueryCodehash(script []byte) (string, error) {
	if err := checkLen(script, FtDataLen, ProtoTypeFT); err != nil {
		return "", err
	}

	return codehash(script, FtDataLen), nil
}

func GetFtQueryGenesis(script []byte) (string, error) {
	if err := checkLen(script, FtDataLen, ProtoTypeFT); err != nil {
		return "", err
	}

	return hex.EncodeToString(tail(script, ftGenesisOffset, ftRabinHashOffset)), nil
}
