package httpimpl

import (
	"strconv"

	"github.com/bsv-blockchain/mockindexer/services/asset/repository"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultCursor = 0
	defaultSize   = 10
)

// getQueryParams reads cursor and size. Both are optional and values that do not
// parse as non-negative integers fall back to the defaults.
func getQueryParams(c echo.Context) *repository.QueryParams {
	return &repository.QueryParams{
		Cursor: intQueryParam(c, "cursor", defaultCursor),
		Size:   intQueryParam(c, "size", defaultSize),
	}
}

func intQueryParam(c echo.Context, name string, defaultValue int) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || value < 0 {
		return defaultValue
	}

	return value
}

// getSellQueryParams reads isReady, false unless it parses as true.
func getSellQueryParams(c echo.Context) *repository.SellQueryParams {
	ready, _ := strconv.ParseBool(c.QueryParam("isReady"))

	return &repository.SellQueryParams{Ready: ready}
}

// fail counts the failed request and writes the error response.
func fail(c echo.Context, counter *prometheus.CounterVec, function string, err error) error {
	counter.WithLabelValues(function, "ERROR").Inc()
	return sendErrorFor(c, err)
}
