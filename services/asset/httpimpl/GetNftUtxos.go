package httpimpl

import (
	"net/http"

	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/labstack/echo/v4"
)

func (h *HTTP) GetNftUtxos(c echo.Context) error {
	params := getQueryParams(c)

	utxos, err := h.provider.GetNftUtxos(c.Request().Context(), c.Param("codehash"), c.Param("genesis"), c.Param("address"), params)
	if err != nil {
		return fail(c, prometheusAssetHTTPGetNft, "GetNftUtxos", err)
	}

	prometheusAssetHTTPGetNft.WithLabelValues("GetNftUtxos", "OK").Inc()

	return c.JSON(http.StatusOK, utxos)
}

// GetNftUtxo returns the current output of a single token index, 404 when nobody holds it.
func (h *HTTP) GetNftUtxo(c echo.Context) error {
	codehash, genesis, tokenIndex := c.Param("codehash"), c.Param("genesis"), c.Param("tokenIndex")

	utxo, err := h.provider.GetNftUtxo(c.Request().Context(), codehash, genesis, tokenIndex)
	if err != nil {
		return fail(c, prometheusAssetHTTPGetNft, "GetNftUtxo", err)
	}

	if utxo == nil {
		return fail(c, prometheusAssetHTTPGetNft, "GetNftUtxo", errors.NewNotFoundError("nft %s/%s #%s not found", codehash, genesis, tokenIndex))
	}

	prometheusAssetHTTPGetNft.WithLabelValues("GetNftUtxo", "OK").Inc()

	return c.JSON(http.StatusOK, utxo)
}

// GetNftSellUtxoDetail lists the sell offers of one token index. The isReady query flag is accepted and not applied.
func (h *HTTP) GetNftSellUtxoDetail(c echo.Context) error {
	params := getSellQueryParams(c)

	details, err := h.provider.GetNftSellUtxoDetail(c.Request().Context(), c.Param("codehash"), c.Param("genesis"), c.Param("tokenIndex"), params)
	if err != nil {
		return fail(c, prometheusAssetHTTPGetNft, "GetNftSellUtxoDetail", err)
	}

	prometheusAssetHTTPGetNft.WithLabelValues("GetNftSellUtxoDetail", "OK").Inc()

	return c.JSON(http.StatusOK, details)
}
