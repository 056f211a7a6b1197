package model

import (
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/mockindexer/errors"
)

// Outpoint identifies one transaction output. It is comparable and used directly as a map key.
type Outpoint struct {
	TxID chainhash.Hash
	Vout uint32
}

func NewOutpoint(txID *chainhash.Hash, vout uint32) Outpoint {
	return Outpoint{TxID: *txID, Vout: vout}
}

// NewOutpointFromString parses a txid in its usual reversed hex form.
func NewOutpointFromString(txID string, vout uint32) (Outpoint, error) {
	hash, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return Outpoint{}, errors.NewInvalidArgumentError("invalid txid %q", txID, err)
	}

	return Outpoint{TxID: *hash, Vout: vout}, nil
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID.String(), o.Vout)
}

// SpentRecord is appended to the spent log exactly once, when an outpoint leaves the active set.
type SpentRecord struct {
	Outpoint           Outpoint
	SpendingTxID       chainhash.Hash
	SpendingInputIndex uint32
}
