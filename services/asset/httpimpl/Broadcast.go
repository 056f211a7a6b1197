package httpimpl

import (
	"io"
	"net/http"
	"strings"

	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/labstack/echo/v4"
)

// maxTxSize bounds the request body read by Broadcast.
const maxTxSize = 32 * 1024 * 1024

type broadcastResponse struct {
	TxID string `json:"txid"`
}

// Broadcast applies the transaction in the request body to the utxo set.
//
// The body is either raw bytes (Content-Type: application/octet-stream) or the
// transaction hex as text. Rejections map to 400 (malformed), 409 (missing input or
// already known) and 422 (script verification), each with the JSON error body.
func (h *HTTP) Broadcast(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxTxSize))
	if err != nil {
		return fail(c, prometheusAssetHTTPBroadcast, "Broadcast", errors.NewInvalidArgumentError("failed to read request body", err))
	}

	var txID string

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEOctetStream) {
		txID, err = h.provider.BroadcastBytes(ctx, body)
	} else {
		txID, err = h.provider.Broadcast(ctx, string(body))
	}

	if err != nil {
		h.logger.Warnf("[Asset_http] Broadcast rejected: %v", err)
		return fail(c, prometheusAssetHTTPBroadcast, "Broadcast", err)
	}

	prometheusAssetHTTPBroadcast.WithLabelValues("Broadcast", "OK").Inc()

	return c.JSON(http.StatusOK, &broadcastResponse{TxID: txID})
}
