package model

import (
	"math/big"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
)

type Kind uint8

const (
	KindUnclassified Kind = iota
	KindPlain
	KindFungibleToken
	KindNonFungibleToken
	KindSaleListing
)

var kindNames = map[Kind]string{
	KindUnclassified:     "unclassified",
	KindPlain:            "plain",
	KindFungibleToken:    "ft",
	KindNonFungibleToken: "nft",
	KindSaleListing:      "nftSell",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UtxoData is the decoded content of an output. The set of implementations is closed:
// Plain, FungibleToken, NonFungibleToken, SaleListing and Unclassified.
type UtxoData interface {
	Kind() Kind
	utxoData()
}

type Plain struct {
	Address string
}

type FungibleToken struct {
	Codehash string
	Genesis  string
	Address  string
	Amount   *big.Int
}

type NonFungibleToken struct {
	Codehash   string
	Genesis    string
	Address    string
	TokenIndex string
}

type SaleListing struct {
	Codehash      string
	Genesis       string
	TokenIndex    string
	SellerAddress string
	Price         uint64
}

type Unclassified struct{}

func (*Plain) Kind() Kind            { return KindPlain }
func (*FungibleToken) Kind() Kind    { return KindFungibleToken }
func (*NonFungibleToken) Kind() Kind { return KindNonFungibleToken }
func (*SaleListing) Kind() Kind      { return KindSaleListing }
func (*Unclassified) Kind() Kind     { return KindUnclassified }

func (*Plain) utxoData()            {}
func (*FungibleToken) utxoData()    {}
func (*NonFungibleToken) utxoData() {}
func (*SaleListing) utxoData()      {}
func (*Unclassified) utxoData()     {}

// UtxoEntry is one active output together with its decoded content.
type UtxoEntry struct {
	Outpoint
	Satoshis      uint64
	LockingScript *bscript.Script
	Data          UtxoData
}

func (e *UtxoEntry) Kind() Kind {
	if e.Data == nil {
		return KindUnclassified
	}

	return e.Data.Kind()
}

// Address returns the holder address for kinds that have one, the seller for sale listings.
func (e *UtxoEntry) Address() string {
	switch d := e.Data.(type) {
	case *Plain:
		return d.Address
	case *FungibleToken:
		return d.Address
	case *NonFungibleToken:
		return d.Address
	case *SaleListing:
		return d.SellerAddress
	default:
		return ""
	}
}

// TokenID returns codehash and genesis for token kinds, ok is false otherwise.
func (e *UtxoEntry) TokenID() (codehash string, genesis string, ok bool) {
	switch d := e.Data.(type) {
	case *FungibleToken:
		return d.Codehash, d.Genesis, true
	case *NonFungibleToken:
		return d.Codehash, d.Genesis, true
	case *SaleListing:
		return d.Codehash, d.Genesis, true
	default:
		return "", "", false
	}
}

// TokenIndex returns the token index of NFT and sale listing entries.
func (e *UtxoEntry) TokenIndex() string {
	switch d := e.Data.(type) {
	case *NonFungibleToken:
		return d.TokenIndex
	case *SaleListing:
		return d.TokenIndex
	default:
		return ""
	}
}
