package httpimpl

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetUtxos returns the plain outputs held by the address path parameter, oldest first.
//
// Response: 200 with a JSON array of {txId, outputIndex, satoshis, address}.
func (h *HTTP) GetUtxos(c echo.Context) error {
	address := c.Param("address")

	h.logger.Debugf("[Asset_http] GetUtxos for %s: %s", c.Request().RemoteAddr, address)

	utxos, err := h.provider.GetUtxos(c.Request().Context(), address)
	if err != nil {
		return fail(c, prometheusAssetHTTPGetUtxos, "GetUtxos", err)
	}

	prometheusAssetHTTPGetUtxos.WithLabelValues("GetUtxos", "OK").Inc()

	return c.JSON(http.StatusOK, utxos)
}
