package errors

import (
	"context"
	"errors"
)

// CodeOf returns the code of the first *Error in the chain, ERR_UNKNOWN when there is none.
func CodeOf(err error) ERR {
	if err == nil {
		return ERR_UNKNOWN
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ERR_CONTEXT
	}

	var tErr *Error
	if As(err, &tErr) {
		return tErr.Code()
	}

	return ERR_UNKNOWN
}

// IsTxRejection reports whether err, or any error it wraps, rejects a transaction on
// its own merits, as opposed to failing because of a storage or internal problem.
func IsTxRejection(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		var tErr *Error
		if !errors.As(err, &tErr) {
			return false
		}

		switch tErr.Code() {
		case ERR_TX_MALFORMED,
			ERR_TX_INVALID,
			ERR_TX_MISSING_INPUT,
			ERR_TX_ALREADY_EXISTS,
			ERR_TX_SCRIPT_VERIFICATION:
			return true
		}

		err = tErr
	}

	return false
}
