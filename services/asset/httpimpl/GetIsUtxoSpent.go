package httpimpl

import (
	"net/http"
	"strconv"

	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/labstack/echo/v4"
)

type spentResponse struct {
	TxID  string `json:"txid"`
	Vout  uint32 `json:"vout"`
	Spent bool   `json:"spent"`
}

func (h *HTTP) GetIsUtxoSpent(c echo.Context) error {
	txID := c.Param("txid")

	vout, err := strconv.ParseUint(c.Param("vout"), 10, 32)
	if err != nil {
		return fail(c, prometheusAssetHTTPGetUtxoSpent, "GetIsUtxoSpent", errors.NewInvalidArgumentError("invalid vout %q", c.Param("vout"), err))
	}

	spent, err := h.provider.GetIsUtxoSpent(c.Request().Context(), txID, uint32(vout))
	if err != nil {
		return fail(c, prometheusAssetHTTPGetUtxoSpent, "GetIsUtxoSpent", err)
	}

	prometheusAssetHTTPGetUtxoSpent.WithLabelValues("GetIsUtxoSpent", "OK").Inc()

	return c.JSON(http.StatusOK, &spentResponse{TxID: txID, Vout: uint32(vout), Spent: spent})
}
