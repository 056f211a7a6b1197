package httpimpl

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetTokenUtxos lists the fungible token outputs of one token held by an address.
// Amounts are decimal strings. cursor and size are accepted and not applied.
func (h *HTTP) GetTokenUtxos(c echo.Context) error {
	params := getQueryParams(c)

	utxos, err := h.provider.GetTokenUtxos(c.Request().Context(), c.Param("codehash"), c.Param("genesis"), c.Param("address"), params)
	if err != nil {
		return fail(c, prometheusAssetHTTPGetFt, "GetTokenUtxos", err)
	}

	prometheusAssetHTTPGetFt.WithLabelValues("GetTokenUtxos", "OK").Inc()

	return c.JSON(http.StatusOK, utxos)
}

func (h *HTTP) GetTokenBalance(c echo.Context) error {
	balance, err := h.provider.GetTokenBalance(c.Request().Context(), c.Param("codehash"), c.Param("genesis"), c.Param("address"))
	if err != nil {
		return fail(c, prometheusAssetHTTPGetFt, "GetTokenBalance", err)
	}

	prometheusAssetHTTPGetFt.WithLabelValues("GetTokenBalance", "OK").Inc()

	return c.JSON(http.StatusOK, balance)
}
