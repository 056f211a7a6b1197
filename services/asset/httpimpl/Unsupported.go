package httpimpl

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// The summary endpoints are routed so clients get a 501 with the usual error body.

func (h *HTTP) GetBalance(c echo.Context) error {
	balance, err := h.provider.GetBalance(c.Request().Context(), c.Param("address"))
	if err != nil {
		return sendErrorFor(c, err)
	}

	return c.JSON(http.StatusOK, balance)
}

func (h *HTTP) GetTokenList(c echo.Context) error {
	params := getQueryParams(c)

	tokens, err := h.provider.GetTokenList(c.Request().Context(), c.Param("address"), params)
	if err != nil {
		return sendErrorFor(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

func (h *HTTP) GetNftCollectionList(c echo.Context) error {
	params := getQueryParams(c)

	collections, err := h.provider.GetNftCollectionList(c.Request().Context(), c.Param("address"), params)
	if err != nil {
		return sendErrorFor(c, err)
	}

	return c.JSON(http.StatusOK, collections)
}
