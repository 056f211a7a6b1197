package httpimpl

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/provider"
	"github.com/bsv-blockchain/mockindexer/services/asset/repository"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo/memory"
	"github.com/bsv-blockchain/mockindexer/ulogger"
	"github.com/bsv-blockchain/mockindexer/util/test/fixtures"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTxID = "9d45ad79ad3c6baecae872c0e35022d60c3bbbd024ccce06690321ece15ea995"

func newTestServer(t *testing.T, p provider.Interface) *HTTP {
	tSettings := &settings.Settings{
		PrometheusEndpoint: "/metrics",
		Asset:              settings.AssetSettings{APIPrefix: "/api/v1"},
	}

	h, err := New(ulogger.TestLogger{}, tSettings, p)
	require.NoError(t, err)

	return h
}

func doRequest(h *HTTP, method, target, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestNew(t *testing.T) {
	_, err := New(ulogger.TestLogger{}, &settings.Settings{}, nil)
	require.ErrorIs(t, err, errors.ErrConfiguration)
}

func TestRoutes(t *testing.T) {
	t.Run("alive", func(t *testing.T) {
		rec := doRequest(newTestServer(t, &provider.Mock{}), http.MethodGet, "/alive", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Uptime")
	})

	t.Run("health", func(t *testing.T) {
		mockProvider := &provider.Mock{}
		mockProvider.On("Health").Return(http.StatusOK, "Memory Store available", nil)

		rec := doRequest(newTestServer(t, mockProvider), http.MethodGet, "/health", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Memory Store available", rec.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		rec := doRequest(newTestServer(t, &provider.Mock{}), http.MethodGet, "/metrics", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	})

	t.Run("utxos", func(t *testing.T) {
		mockProvider := &provider.Mock{}
		mockProvider.On("GetUtxos", "addr").Return([]*repository.Utxo{{TxID: testTxID, OutputIndex: 1, Satoshis: 1000, Address: "addr"}}, nil)

		rec := doRequest(newTestServer(t, mockProvider), http.MethodGet, "/api/v1/address/addr/utxo", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"txId":"`+testTxID+`","outputIndex":1,"satoshis":1000,"address":"addr"}]`, rec.Body.String())
	})

	t.Run("unsupported", func(t *testing.T) {
		mockProvider := &provider.Mock{}
		mockProvider.On("GetBalance", "addr").Return(nil, errors.ErrUnsupported)
		mockProvider.On("GetTokenList", "addr", &repository.QueryParams{Cursor: 0, Size: 10}).Return(nil, errors.ErrUnsupported)
		mockProvider.On("GetNftCollectionList", "addr", &repository.QueryParams{Cursor: 0, Size: 10}).Return(nil, errors.ErrUnsupported)

		h := newTestServer(t, mockProvider)

		for _, target := range []string{"/api/v1/address/addr/balance", "/api/v1/ft/summary/addr", "/api/v1/nft/summary/addr"} {
			rec := doRequest(h, http.MethodGet, target, "", nil)
			assert.Equal(t, http.StatusNotImplemented, rec.Code, target)
		}
	})

	t.Run("reset and clean", func(t *testing.T) {
		mockProvider := &provider.Mock{}
		mockProvider.On("CleanCaches").Return(nil)
		mockProvider.On("CleanBsvUtxos").Return(3, nil)

		h := newTestServer(t, mockProvider)

		rec := doRequest(h, http.MethodPost, "/api/v1/reset", "", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(h, http.MethodDelete, "/api/v1/utxo/plain", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"removed":3}`, rec.Body.String())

		mockProvider.AssertExpectations(t)
	})
}

// TestEndToEnd drives the router against a real provider over the memory store.
func TestEndToEnd(t *testing.T) {
	tSettings := &settings.Settings{ChainCfgParams: &chaincfg.MainNetParams}

	p, err := provider.New(ulogger.TestLogger{}, tSettings, memory.New(ulogger.TestLogger{}))
	require.NoError(t, err)

	h := newTestServer(t, p)

	privA := fixtures.NewPrivateKey(t)
	addressA := fixtures.Address(t, privA, true)

	tx := fixtures.Create(t, fixtures.WithPrivateKey(privA), fixtures.WithP2PKHOutputs(2, 600))

	rec := doRequest(h, http.MethodPost, "/api/v1/tx", echo.MIMETextPlain, []byte(tx.String()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"txid":"`+tx.TxID()+`"}`, rec.Body.String())

	rec = doRequest(h, http.MethodGet, "/api/v1/address/"+addressA+"/utxo", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var utxos []*repository.Utxo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &utxos))
	require.Len(t, utxos, 2)
	assert.Equal(t, uint32(0), utxos[0].OutputIndex)
	assert.Equal(t, uint32(1), utxos[1].OutputIndex)

	rec = doRequest(h, http.MethodGet, "/api/v1/tx/"+tx.TxID()+"/raw", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tx.String(), rec.Body.String())

	spend := fixtures.Create(t, fixtures.WithInput(tx, 1, privA), fixtures.WithP2PKHOutputs(1, 500, privA.PubKey()))

	rec = doRequest(h, http.MethodPost, "/api/v1/pushtx", echo.MIMEOctetStream, spend.Bytes())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(h, http.MethodGet, "/api/v1/utxo/"+tx.TxID()+"/1/spent", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"txid":"`+tx.TxID()+`","vout":1,"spent":true}`, rec.Body.String())

	// replaying the spend hits the missing input
	rec = doRequest(h, http.MethodPost, "/api/v1/tx", echo.MIMEOctetStream, spend.Bytes())
	assert.Equal(t, http.StatusConflict, rec.Code)

	var errResp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, float64(http.StatusConflict), errResp["status"])
	assert.Equal(t, float64(errors.ERR_TX_MISSING_INPUT), errResp["code"])

	data, ok := errResp["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, tx.TxID(), data["txid"])
	assert.Equal(t, float64(1), data["vout"])

	rec = doRequest(h, http.MethodGet, "/api/v1/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"plain":2`)

	require.NoError(t, h.Stop(context.Background()))
}

func TestBroadcastHex(t *testing.T) {
	t.Run("text body goes to the hex decoder", func(t *testing.T) {
		httpServer, mockProvider, echoContext, responseRecorder := GetMockHTTP(t, strings.NewReader("0100\n"))

		mockProvider.On("Broadcast", "0100\n").Return(testTxID, nil)

		require.NoError(t, httpServer.Broadcast(echoContext))

		assert.Equal(t, http.StatusOK, responseRecorder.Code)
		assert.JSONEq(t, `{"txid":"`+testTxID+`"}`, responseRecorder.Body.String())
	})
}
