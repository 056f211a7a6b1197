// Package classifier maps an output's locking script onto one of the UtxoData variants.
package classifier

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/mockindexer/model"
	"github.com/bsv-blockchain/mockindexer/pkg/sensible"
	"github.com/bsv-blockchain/mockindexer/settings"
)

type Classifier struct {
	mainnet bool
}

func New(tSettings *settings.Settings) *Classifier {
	return &Classifier{mainnet: tSettings.IsMainnet()}
}

// NewForNetwork builds a classifier rendering addresses for mainnet or testnet.
func NewForNetwork(mainnet bool) *Classifier {
	return &Classifier{mainnet: mainnet}
}

// Classify never fails: anything that cannot be decoded is Unclassified.
// The result depends on the script bytes only.
func (c *Classifier) Classify(script *bscript.Script) model.UtxoData {
	if script == nil || len(*script) == 0 {
		return &model.Unclassified{}
	}

	if script.IsP2PKH() {
		pkh, err := script.PublicKeyHash()
		if err != nil {
			return &model.Unclassified{}
		}

		address, err := c.address(pkh)
		if err != nil {
			return &model.Unclassified{}
		}

		return &model.Plain{Address: address}
	}

	b := []byte(*script)

	var (
		data model.UtxoData
		err  error
	)

	switch sensible.GetProtoType(b) {
	case sensible.ProtoTypeFT:
		data, err = c.fungibleToken(b)
	case sensible.ProtoTypeNFT:
		data, err = c.nonFungibleToken(b)
	case sensible.ProtoTypeNFTSell:
		data, err = c.saleListing(b)
	default:
		return &model.Unclassified{}
	}

	if err != nil {
		return &model.Unclassified{}
	}

	return data
}

func (c *Classifier) address(pkh []byte) (string, error) {
	addr, err := bscript.NewAddressFromPublicKeyHash(pkh, c.mainnet)
	if err != nil {
		return "", err
	}

	return addr.AddressString, nil
}

func (c *Classifier) fungibleToken(script []byte) (model.UtxoData, error) {
	dataPart, err := sensible.ParseFtDataPart(script)
	if err != nil {
		return nil, err
	}

	codehash, err := sensible.GetFtQueryCodehash(script)
	if err != nil {
		return nil, err
	}

	genesis, err := sensible.GetFtQueryGenesis(script)
	if err != nil {
		return nil, err
	}

	address, err := c.address(dataPart.TokenAddress)
	if err != nil {
		return nil, err
	}

	return &model.FungibleToken{
		Codehash: codehash,
		Genesis:  genesis,
		Address:  address,
		Amount:   new(big.Int).SetUint64(dataPart.TokenAmount),
	}, nil
}

func (c *Classifier) nonFungibleToken(script []byte) (model.UtxoData, error) {
	dataPart, err := sensible.ParseNftDataPart(script)
	if err != nil {
		return nil, err
	}

	codehash, err := sensible.GetNftQueryCodehash(script)
	if err != nil {
		return nil, err
	}

	genesis, err := sensible.GetNftQueryGenesis(script)
	if err != nil {
		return nil, err
	}

	address, err := c.address(dataPart.NftAddress)
	if err != nil {
		return nil, err
	}

	return &model.NonFungibleToken{
		Codehash:   codehash,
		Genesis:    genesis,
		Address:    address,
		TokenIndex: strconv.FormatUint(dataPart.TokenIndex, 10),
	}, nil
}

func (c *Classifier) saleListing(script []byte) (model.UtxoData, error) {
	dataPart, err := sensible.ParseNftSellDataPart(script)
	if err != nil {
		return nil, err
	}

	seller, err := c.address(dataPart.SellerAddress)
	if err != nil {
		return nil, err
	}

	return &model.SaleListing{
		Codehash:      hex.EncodeToString(dataPart.Codehash),
		Genesis:       hex.EncodeToString(dataPart.Genesis),
		TokenIndex:    strconv.FormatUint(dataPart.TokenIndex, 10),
		SellerAddress: seller,
		Price:         dataPart.SatoshisPrice,
	}, nil
}
