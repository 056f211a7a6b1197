package httpimpl

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bsv-blockchain/mockindexer/provider"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/ulogger"
	"github.com/labstack/echo/v4"
)

func GetMockHTTP(t *testing.T, body io.Reader) (*HTTP, *provider.Mock, echo.Context, *httptest.ResponseRecorder) {
	mockProvider := &provider.Mock{}

	req, err := http.NewRequest("GET", "/", body)
	if err != nil {
		t.Fatal(err)
	}

	req.RemoteAddr = "example.com"

	rec := httptest.NewRecorder()

	e := echo.New()
	e.JSONSerializer = &jsonSerializer{}
	c := e.NewContext(req, rec)

	httpServer := &HTTP{
		logger:    ulogger.TestLogger{},
		settings:  &settings.Settings{},
		provider:  mockProvider,
		e:         e,
		startTime: time.Now(),
	}

	return httpServer, mockProvider, c, rec
}
