// Package sensible decodes the data parts of sensible contract locking scripts.
//
// Every protocol script ends with
//
//	<contract code> <data part> <version u32le> <type u32le> "sensible"
//
// and all fields are located by their offset from the end of the script.
package sensible

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"

	hash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/bsv-blockchain/mockindexer/errors"
)

type ProtoType uint32

const (
	ProtoTypeNone    ProtoType = 0
	ProtoTypeFT      ProtoType = 1
	ProtoTypeUnique  ProtoType = 2
	ProtoTypeNFT     ProtoType = 3
	ProtoTypeNFTSell ProtoType = 0x10001
)

const (
	ProtoFlagLen    = 8
	ProtoTypeLen    = 4
	ProtoVersionLen = 4
	ProtoHeaderLen  = ProtoFlagLen + ProtoTypeLen + ProtoVersionLen

	AddressLen    = 20
	HashLen       = 20
	SensibleIDLen = 36
)

var ProtoFlag = []byte("sensible")

func (p ProtoType) String() string {
	switch p {
	case ProtoTypeFT:
		return "FT"
	case ProtoTypeUnique:
		return "UNIQUE"
	case ProtoTypeNFT:
		return "NFT"
	case ProtoTypeNFTSell:
		return "NFT_SELL"
	default:
		return "NONE"
	}
}

// HasProtoFlag reports whether the script carries the protocol trailer.
func HasProtoFlag(script []byte) bool {
	if len(script) < ProtoHeaderLen {
		return false
	}

	return bytes.Equal(script[len(script)-ProtoFlagLen:], ProtoFlag)
}

// GetProtoType returns ProtoTypeNone for scripts without the protocol trailer.
func GetProtoType(script []byte) ProtoType {
	if !HasProtoFlag(script) {
		return ProtoTypeNone
	}

	l := len(script)

	return ProtoType(binary.LittleEndian.Uint32(script[l-ProtoFlagLen-ProtoTypeLen : l-ProtoFlagLen]))
}

func GetProtoVersion(script []byte) uint32 {
	if !HasProtoFlag(script) {
		return 0
	}

	l := len(script)

	return binary.LittleEndian.Uint32(script[l-ProtoHeaderLen : l-ProtoFlagLen-ProtoTypeLen])
}

// SensibleID is the outpoint of the genesis transaction of a token.
type SensibleID struct {
	TxID  []byte
	Index uint32
}

func (s SensibleID) Bytes() []byte {
	b := make([]byte, SensibleIDLen)
	copy(b, s.TxID)
	binary.LittleEndian.PutUint32(b[32:], s.Index)

	return b
}

func parseSensibleID(b []byte) SensibleID {
	txID := make([]byte, 32)
	copy(txID, b[:32])

	return SensibleID{TxID: txID, Index: binary.LittleEndian.Uint32(b[32:36])}
}

// tail returns script[l-from : l-to] where l is the script length.
func tail(script []byte, from, to int) []byte {
	l := len(script)
	out := make([]byte, from-to)
	copy(out, script[l-from:l-to])

	return out
}

func tailUint64(script []byte, from int) uint64 {
	l := len(script)

	return binary.LittleEndian.Uint64(script[l-from : l-from+8])
}

func checkLen(script []byte, dataLen int, proto ProtoType) error {
	if GetProtoType(script) != proto {
		return errors.NewInvalidArgumentError("script is not a %s script", proto)
	}

	if len(script) < dataLen {
		return errors.NewInvalidArgumentError("%s script too short: %d < %d bytes", proto, len(script), dataLen)
	}

	return nil
}

// codehash is hash160 of everything before the data part, hex encoded.
func codehash(script []byte, dataLen int) string {
	return hex.EncodeToString(hash.Hash160(script[:len(script)-dataLen]))
}

// trimZero strips the zero padding of fixed width text fields.
func trimZero(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}
