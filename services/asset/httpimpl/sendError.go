package httpimpl

import (
	"net/http"

	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/labstack/echo/v4"
)

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Status int32           `json:"status"`
	Code   int32           `json:"code"`
	Err    string          `json:"error"`
	Data   errors.ErrDataI `json:"data,omitempty"`
}

func sendError(c echo.Context, status int, code int32, err error) error {
	e := &errorResponse{
		Status: int32(status), // nolint:gosec
		Code:   code,
		Err:    err.Error(),
	}

	var tErr *errors.Error
	if errors.As(err, &tErr) {
		e.Data = tErr.Data()
	}

	return c.JSON(status, e)
}

// sendErrorFor derives the status from the error code carried by err.
func sendErrorFor(c echo.Context, err error) error {
	code := errors.CodeOf(err)
	return sendError(c, statusFor(code), int32(code), err)
}

func statusFor(code errors.ERR) int {
	switch code {
	case errors.ERR_INVALID_ARGUMENT, errors.ERR_TX_MALFORMED, errors.ERR_TX_INVALID:
		return http.StatusBadRequest
	case errors.ERR_NOT_FOUND, errors.ERR_TX_NOT_FOUND:
		return http.StatusNotFound
	case errors.ERR_TX_MISSING_INPUT, errors.ERR_TX_ALREADY_EXISTS:
		return http.StatusConflict
	case errors.ERR_TX_SCRIPT_VERIFICATION:
		return http.StatusUnprocessableEntity
	case errors.ERR_UNSUPPORTED:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
