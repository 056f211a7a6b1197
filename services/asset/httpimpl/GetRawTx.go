package httpimpl

import (
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetRawTx returns the archived transaction as hex text.
func (h *HTTP) GetRawTx(c echo.Context) error {
	raw, err := h.provider.GetRawTx(c.Request().Context(), c.Param("txid"))
	if err != nil {
		return fail(c, prometheusAssetHTTPGetRawTx, "GetRawTx", err)
	}

	prometheusAssetHTTPGetRawTx.WithLabelValues("GetRawTx", "OK").Inc()

	return c.String(http.StatusOK, hex.EncodeToString(raw))
}
