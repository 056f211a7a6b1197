// Package fixtures builds signed transactions and protocol scripts for tests.
package fixtures

import (
	"context"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/unlocker"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	hash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/bsv-blockchain/mockindexer/pkg/sensible"
	"github.com/stretchr/testify/require"
)

// ContractCode stands in for the contract body in front of protocol data parts.
var ContractCode = []byte{0x00, 0x6a}

// TxOption is a function that modifies a transaction creation options
type TxOption func(*TxOptions)

type input struct {
	tx      *bt.Tx
	vout    uint32
	privKey *bec.PrivateKey
}

type output struct {
	script *bscript.Script
	pubKey *bec.PublicKey
	amount uint64
}

type TxOptions struct {
	ctx             context.Context
	fallbackPrivKey *bec.PrivateKey
	inputs          []input
	outputs         []output
	afterSigning    []func(tx *bt.Tx)
}

func WithContextForSigning(ctx context.Context) TxOption {
	return func(opts *TxOptions) {
		opts.ctx = ctx
	}
}

// WithPrivateKey sets the key used for inputs and P2PKH outputs that do not name their own.
func WithPrivateKey(privKey *bec.PrivateKey) TxOption {
	return func(opts *TxOptions) {
		opts.fallbackPrivKey = privKey
	}
}

// WithInput spends output vout of tx. Add it multiple times for multiple inputs.
func WithInput(tx *bt.Tx, vout uint32, priv ...*bec.PrivateKey) TxOption {
	var p *bec.PrivateKey
	if len(priv) > 0 {
		p = priv[0]
	}

	return func(opts *TxOptions) {
		opts.inputs = append(opts.inputs, input{tx: tx, vout: vout, privKey: p})
	}
}

func WithOutput(amount uint64, script *bscript.Script) TxOption {
	return func(opts *TxOptions) {
		opts.outputs = append(opts.outputs, output{script: script, amount: amount})
	}
}

func WithP2PKHOutputs(numOutputs int, amount uint64, pubKey ...*bec.PublicKey) TxOption {
	var p *bec.PublicKey
	if len(pubKey) > 0 {
		p = pubKey[0]
	}

	return func(opts *TxOptions) {
		for i := 0; i < numOutputs; i++ {
			opts.outputs = append(opts.outputs, output{pubKey: p, amount: amount})
		}
	}
}

func WithFtOutput(amount uint64, data *sensible.FtDataPart) TxOption {
	return WithOutput(amount, ProtocolScript(data.Bytes()))
}

func WithNftOutput(amount uint64, data *sensible.NftDataPart) TxOption {
	return WithOutput(amount, ProtocolScript(data.Bytes()))
}

func WithNftSellOutput(amount uint64, data *sensible.NftSellDataPart) TxOption {
	return WithOutput(amount, ProtocolScript(data.Bytes()))
}

// WithAfterSigning runs f on the transaction once it is signed, to produce invalid signatures.
func WithAfterSigning(f func(tx *bt.Tx)) TxOption {
	return func(opts *TxOptions) {
		opts.afterSigning = append(opts.afterSigning, f)
	}
}

// Create builds and signs a transaction. Without inputs it is an unconstrained issuance.
func Create(t *testing.T, options ...TxOption) *bt.Tx {
	opts := &TxOptions{}

	for _, option := range options {
		option(opts)
	}

	require.GreaterOrEqual(t, len(opts.outputs), 1, "No outputs - need at least one output")

	tx := bt.NewTx()

	var totalAmount uint64

	for _, in := range opts.inputs {
		if in.privKey == nil && opts.fallbackPrivKey == nil {
			require.Fail(t, "No private key provided for input and no fallback private key set")
		}

		err := tx.FromUTXOs(&bt.UTXO{
			TxIDHash:      in.tx.TxIDChainHash(),
			Vout:          in.vout,
			LockingScript: in.tx.Outputs[in.vout].LockingScript,
			Satoshis:      in.tx.Outputs[in.vout].Satoshis,
		})
		require.NoError(t, err)

		totalAmount += in.tx.Outputs[in.vout].Satoshis
	}

	for _, out := range opts.outputs {
		if len(opts.inputs) > 0 {
			require.GreaterOrEqual(t, totalAmount, out.amount, "output amount %d is greater than remaining input amount %d", out.amount, totalAmount)
			totalAmount -= out.amount
		}

		script := out.script

		if script == nil {
			pubKey := out.pubKey
			if pubKey == nil {
				require.NotNil(t, opts.fallbackPrivKey, "no public key provided for output and no default private key set")
				pubKey = opts.fallbackPrivKey.PubKey()
			}

			var err error

			script, err = bscript.NewP2PKHFromPubKeyBytes(pubKey.Compressed())
			require.NoError(t, err)
		}

		tx.AddOutput(&bt.Output{
			Satoshis:      out.amount,
			LockingScript: script,
		})
	}

	if len(opts.inputs) > 0 {
		privKeys := make(map[*bec.PrivateKey]struct{})

		for _, in := range opts.inputs {
			if in.privKey != nil {
				privKeys[in.privKey] = struct{}{}
			} else {
				privKeys[opts.fallbackPrivKey] = struct{}{}
			}
		}

		ctx := opts.ctx
		if ctx == nil {
			ctx = context.Background()
		}

		for privKey := range privKeys {
			require.NoError(t, tx.FillAllInputs(ctx, &unlocker.Getter{PrivateKey: privKey}))
		}

		for i, in := range tx.Inputs {
			require.GreaterOrEqual(t, len(*in.UnlockingScript), 1, "Input %d is not signed", i)
		}
	}

	for _, f := range opts.afterSigning {
		f(tx)
	}

	return tx
}

// ProtocolScript wraps a sensible data part behind ContractCode.
func ProtocolScript(dataPart []byte) *bscript.Script {
	return bscript.NewFromBytes(sensible.BuildScript(ContractCode, dataPart))
}

// NewPrivateKey returns a fresh key, failing the test on error.
func NewPrivateKey(t *testing.T) *bec.PrivateKey {
	privKey, err := bec.NewPrivateKey()
	require.NoError(t, err)

	return privKey
}

func PubKeyHash(privKey *bec.PrivateKey) []byte {
	return hash.Hash160(privKey.PubKey().Compressed())
}

// Address renders the P2PKH address of privKey for mainnet or testnet.
func Address(t *testing.T, privKey *bec.PrivateKey, mainnet bool) string {
	addr, err := bscript.NewAddressFromPublicKeyHash(PubKeyHash(privKey), mainnet)
	require.NoError(t, err)

	return addr.AddressString
}
