package validator

import (
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/bscript/interpreter"
	"github.com/bsv-blockchain/go-bt/v2/bscript/interpreter/scriptflag"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/ulogger"
)

func init() {
	ScriptVerifierFactory[TxInterpreterGoBT] = newScriptVerifierGoBt
}

// verifyFlags is the fixed rule set every input is checked with. go-bt always enables the
// magnetic and monolith opcodes, so they need no flag.
const verifyFlags = scriptflag.VerifyStrictEncoding |
	scriptflag.EnableSighashForkID |
	scriptflag.VerifyLowS |
	scriptflag.VerifyNullFail |
	scriptflag.VerifyDERSignatures |
	scriptflag.VerifyMinimalData |
	scriptflag.StrictMultiSig |
	scriptflag.DiscourageUpgradableNops |
	scriptflag.VerifyCheckLockTimeVerify |
	scriptflag.VerifyCheckSequenceVerify

type scriptVerifierGoBt struct {
	logger           ulogger.Logger
	utxoAfterGenesis bool
}

func newScriptVerifierGoBt(logger ulogger.Logger, tSettings *settings.Settings) ScriptVerifier {
	logger.Debugf("Using GoBT script verifier")

	return &scriptVerifierGoBt{
		logger:           logger,
		utxoAfterGenesis: tSettings.Validator.UtxoAfterGenesis,
	}
}

func (v *scriptVerifierGoBt) VerifyInput(tx *bt.Tx, idx int) (bool, string) {
	if idx < 0 || idx >= len(tx.Inputs) {
		return false, "input index out of range"
	}

	input := tx.Inputs[idx]
	if input.PreviousTxScript == nil {
		return false, "previous output script not attached"
	}

	prevOutput := &bt.Output{
		Satoshis:      input.PreviousTxSatoshis,
		LockingScript: input.PreviousTxScript,
	}

	opts := []interpreter.ExecutionOptionFunc{
		interpreter.WithTx(tx, idx, prevOutput),
		interpreter.WithForkID(),
		interpreter.WithFlags(verifyFlags),
	}

	if v.utxoAfterGenesis {
		opts = append(opts, interpreter.WithAfterGenesis())
	}

	if err := interpreter.NewEngine().Execute(opts...); err != nil {
		v.logger.Debugf("[VerifyInput][%s] input %d failed: %v", tx.TxID(), idx, err)
		return false, err.Error()
	}

	return true, ""
}

func (v *scriptVerifierGoBt) Interpreter() TxInterpreter {
	return TxInterpreterGoBT
}
