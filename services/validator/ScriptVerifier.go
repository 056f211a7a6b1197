// Package validator checks the unlocking scripts of a transaction against the outputs they spend.
package validator

import (
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/ulogger"
)

// TxInterpreter names a script interpreter implementation.
type TxInterpreter string

const (
	// TxInterpreterGoBT uses the go-bt script engine
	TxInterpreterGoBT TxInterpreter = "GoBT"
)

// ScriptVerifier verifies single inputs. The previous locking script and satoshis must be
// attached to each input (PreviousTxScript, PreviousTxSatoshis) before calling it.
type ScriptVerifier interface {
	// VerifyInput returns false and a diagnostic when input idx does not unlock its previous output.
	VerifyInput(tx *bt.Tx, idx int) (bool, string)

	Interpreter() TxInterpreter
}

type ScriptVerifierCreator func(logger ulogger.Logger, tSettings *settings.Settings) ScriptVerifier

// ScriptVerifierFactory holds the registered verifier creators.
var ScriptVerifierFactory = make(map[TxInterpreter]ScriptVerifierCreator)

// NewScriptVerifier returns the verifier registered for interpreter.
func NewScriptVerifier(logger ulogger.Logger, tSettings *settings.Settings, interpreter TxInterpreter) (ScriptVerifier, error) {
	create, ok := ScriptVerifierFactory[interpreter]
	if !ok {
		return nil, errors.NewConfigurationError("no script verifier registered for %s", interpreter)
	}

	return create(logger, tSettings), nil
}

// VerifyTransaction runs verifier over every input. The transaction passes only when all
// inputs pass; every failing input is reported, not only the first.
func VerifyTransaction(verifier ScriptVerifier, tx *bt.Tx) error {
	var (
		failed      []int
		diagnostics []string
	)

	for idx := range tx.Inputs {
		ok, diagnostic := verifier.VerifyInput(tx, idx)
		if !ok {
			failed = append(failed, idx)
			diagnostics = append(diagnostics, diagnostic)
		}
	}

	if len(failed) > 0 {
		return errors.NewScriptVerificationError(failed, diagnostics)
	}

	return nil
}
