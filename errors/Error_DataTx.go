package errors

import (
	"fmt"
	"strings"
)

// MissingInputErrData names the outpoint that could not be resolved while processing a transaction.
type MissingInputErrData struct {
	TxID       string `json:"txid"`
	Vout       uint32 `json:"vout"`
	InputIndex int    `json:"inputIndex"`
}

func (e *MissingInputErrData) Error() string {
	return fmt.Sprintf("input %d spends unknown outpoint %s:%d", e.InputIndex, e.TxID, e.Vout)
}

func (e *MissingInputErrData) SetData(key string, value interface{}) {}

func (e *MissingInputErrData) GetData(key string) interface{} {
	switch key {
	case "txid":
		return e.TxID
	case "vout":
		return e.Vout
	case "inputIndex":
		return e.InputIndex
	}

	return nil
}

func (e *MissingInputErrData) EncodeErrorData() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return []byte{}
	}

	return data
}

// NewMissingInputError reports an input whose previous output is neither active nor spent.
func NewMissingInputError(txID string, vout uint32, inputIndex int) *Error {
	return NewWithData(ERR_TX_MISSING_INPUT, &MissingInputErrData{
		TxID:       txID,
		Vout:       vout,
		InputIndex: inputIndex,
	}, "missing input %s:%d", txID, vout)
}

// ScriptVerificationErrData lists the inputs whose unlocking script did not verify.
type ScriptVerificationErrData struct {
	FailedInputs []int    `json:"failedInputs"`
	Diagnostics  []string `json:"diagnostics"`
}

func (e *ScriptVerificationErrData) Error() string {
	parts := make([]string, 0, len(e.FailedInputs))

	for i, idx := range e.FailedInputs {
		if i < len(e.Diagnostics) && e.Diagnostics[i] != "" {
			parts = append(parts, fmt.Sprintf("input %d: %s", idx, e.Diagnostics[i]))
		} else {
			parts = append(parts, fmt.Sprintf("input %d", idx))
		}
	}

	return strings.Join(parts, "; ")
}

func (e *ScriptVerificationErrData) SetData(key string, value interface{}) {}

func (e *ScriptVerificationErrData) GetData(key string) interface{} {
	switch key {
	case "failedInputs":
		return e.FailedInputs
	case "diagnostics":
		return e.Diagnostics
	}

	return nil
}

func (e *ScriptVerificationErrData) EncodeErrorData() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return []byte{}
	}

	return data
}

// NewScriptVerificationError reports the inputs that failed script evaluation.
func NewScriptVerificationError(failedInputs []int, diagnostics []string) *Error {
	return NewWithData(ERR_TX_SCRIPT_VERIFICATION, &ScriptVerificationErrData{
		FailedInputs: failedInputs,
		Diagnostics:  diagnostics,
	}, "verifyTx failed")
}
