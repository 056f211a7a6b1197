// Package httpimpl serves the indexer queries and the broadcast endpoint over HTTP.
package httpimpl

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/provider"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/ulogger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ordishs/gocore"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP handles the indexer API endpoints using the Echo framework.
type HTTP struct {
	logger    ulogger.Logger
	settings  *settings.Settings
	provider  provider.Interface
	e         *echo.Echo
	startTime time.Time
}

// New creates the echo instance and registers every route.
//
// API Endpoints (relative to Asset.APIPrefix):
//
//	GET    /address/:address/utxo
//	GET    /address/:address/balance                        (unsupported)
//	POST   /tx, /pushtx                                     hex body or application/octet-stream
//	GET    /tx/:txid/raw
//	GET    /ft/utxo/:codehash/:genesis/:address
//	GET    /ft/balance/:codehash/:genesis/:address
//	GET    /ft/summary/:address                             (unsupported)
//	GET    /nft/utxo/:codehash/:genesis/:address
//	GET    /nft/utxo-detail/:codehash/:genesis/:tokenIndex
//	GET    /nft/sell/utxo-detail/:codehash/:genesis/:tokenIndex
//	GET    /nft/summary/:address                            (unsupported)
//	GET    /utxo/:txid/:vout/spent
//	GET    /stats
//	POST   /reset
//	DELETE /utxo/plain
//
// The root also serves /alive, /health, /debug/stats and the prometheus endpoint.
func New(logger ulogger.Logger, tSettings *settings.Settings, p provider.Interface) (*HTTP, error) {
	if p == nil {
		return nil, errors.NewConfigurationError("provider is required")
	}

	initPrometheusMetrics()

	e := echo.New()
	e.Debug = tSettings.Asset.EchoDebug
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = &jsonSerializer{}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return true, nil
		},
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{echo.HeaderContentLength, echo.HeaderContentType},
		MaxAge:        86400,
	}))
	e.Use(middleware.Gzip())

	if e.Debug {
		e.Use(customLoggerMiddleware(logger))
	}

	h := &HTTP{
		logger:    logger,
		settings:  tSettings,
		provider:  p,
		e:         e,
		startTime: time.Now(),
	}

	e.GET("/alive", func(c echo.Context) error {
		return c.String(http.StatusOK, fmt.Sprintf("Mock indexer is alive. Uptime: %s\n", time.Since(h.startTime)))
	})

	e.GET("/health", func(c echo.Context) error {
		logger.Debugf("[Asset_http] Health check")

		status, details, err := p.Health(c.Request().Context())
		if err != nil {
			return c.String(http.StatusInternalServerError, details)
		}

		return c.String(status, details)
	})

	e.GET("/debug/stats", AdaptStdHandler(gocore.HandleStats))

	if tSettings.PrometheusEndpoint != "" {
		e.GET(tSettings.PrometheusEndpoint, echo.WrapHandler(promhttp.Handler()))
	}

	apiGroup := e.Group(tSettings.Asset.APIPrefix)

	apiGroup.GET("/address/:address/utxo", h.GetUtxos)
	apiGroup.GET("/address/:address/balance", h.GetBalance)

	apiGroup.POST("/tx", h.Broadcast)
	apiGroup.POST("/pushtx", h.Broadcast)
	apiGroup.GET("/tx/:txid/raw", h.GetRawTx)

	apiGroup.GET("/ft/utxo/:codehash/:genesis/:address", h.GetTokenUtxos)
	apiGroup.GET("/ft/balance/:codehash/:genesis/:address", h.GetTokenBalance)
	apiGroup.GET("/ft/summary/:address", h.GetTokenList)

	apiGroup.GET("/nft/utxo/:codehash/:genesis/:address", h.GetNftUtxos)
	apiGroup.GET("/nft/utxo-detail/:codehash/:genesis/:tokenIndex", h.GetNftUtxo)
	apiGroup.GET("/nft/sell/utxo-detail/:codehash/:genesis/:tokenIndex", h.GetNftSellUtxoDetail)
	apiGroup.GET("/nft/summary/:address", h.GetNftCollectionList)

	apiGroup.GET("/utxo/:txid/:vout/spent", h.GetIsUtxoSpent)

	apiGroup.GET("/stats", h.GetStats)
	apiGroup.POST("/reset", h.Reset)
	apiGroup.DELETE("/utxo/plain", h.CleanBsvUtxos)

	return h, nil
}

func AdaptStdHandler(handler func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return func(c echo.Context) error {
		handler(c.Response().Writer, c.Request())
		return nil
	}
}

// Start serves on addr until ctx is cancelled.
func (h *HTTP) Start(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()

		h.logger.Infof("[Asset] HTTP service shutting down")

		if err := h.e.Shutdown(context.Background()); err != nil {
			h.logger.Errorf("[Asset] HTTP service shutdown error: %s", err)
		}
	}()

	h.logger.Infof("[Asset] HTTP listening on %s", addr)

	err := h.e.Start(addr)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (h *HTTP) Stop(ctx context.Context) error {
	return h.e.Shutdown(ctx)
}

// ServeHTTP lets the router be mounted elsewhere or driven from tests.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.e.ServeHTTP(w, r)
}

// Middleware to log HTTP requests using the custom logger
func customLoggerMiddleware(logger ulogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Infof("http request: Method=%s, URI=%s, RemoteAddr=%s Status=%d, Duration=%v, err=%v",
				c.Request().Method, c.Request().RequestURI, c.Request().RemoteAddr, c.Response().Status, time.Since(start), err)

			return err
		}
	}
}
