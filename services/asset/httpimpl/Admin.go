package httpimpl

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type cleanResponse struct {
	Removed int `json:"removed"`
}

// Reset drops every output, spend record and archived transaction.
func (h *HTTP) Reset(c echo.Context) error {
	if err := h.provider.CleanCaches(c.Request().Context()); err != nil {
		return fail(c, prometheusAssetHTTPAdmin, "Reset", err)
	}

	prometheusAssetHTTPAdmin.WithLabelValues("Reset", "OK").Inc()

	return c.NoContent(http.StatusNoContent)
}

// CleanBsvUtxos drops the active plain outputs and keeps the token outputs.
func (h *HTTP) CleanBsvUtxos(c echo.Context) error {
	removed, err := h.provider.CleanBsvUtxos(c.Request().Context())
	if err != nil {
		return fail(c, prometheusAssetHTTPAdmin, "CleanBsvUtxos", err)
	}

	prometheusAssetHTTPAdmin.WithLabelValues("CleanBsvUtxos", "OK").Inc()

	return c.JSON(http.StatusOK, &cleanResponse{Removed: removed})
}

func (h *HTTP) GetStats(c echo.Context) error {
	stats, err := h.provider.Stats(c.Request().Context())
	if err != nil {
		return fail(c, prometheusAssetHTTPAdmin, "GetStats", err)
	}

	return c.JSON(http.StatusOK, stats)
}
