package ulogger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bsv-blockchain/mockindexer/ulogger"
	jsoniter "github.com/json-iterator/go"
	"github.com/ordishs/gocore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("processor", ulogger.WithWriter(&buf), ulogger.WithPretty(false), ulogger.WithLevel("DEBUG"))
	logger.Infof("processed tx %s", "abcd")

	var line map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))

	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "processor", line["service"])
	assert.Equal(t, "processed tx abcd", line["message"])
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("store", ulogger.WithWriter(&buf), ulogger.WithPretty(false), ulogger.WithLevel("WARN"))
	assert.Equal(t, int(gocore.WARN), logger.LogLevel())

	logger.Debugf("hidden")
	logger.Infof("hidden")
	logger.Warnf("shown")

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "shown")

	logger.SetLogLevel("debug")
	assert.Equal(t, int(gocore.DEBUG), logger.LogLevel())

	logger.SetLogLevel("bogus")
	assert.Equal(t, int(gocore.INFO), logger.LogLevel())
}

func TestChildInheritsWriterAndLevel(t *testing.T) {
	var buf bytes.Buffer

	parent := ulogger.New("parent", ulogger.WithWriter(&buf), ulogger.WithPretty(false), ulogger.WithLevel("ERROR"))
	child := parent.New("child")

	child.Warnf("dropped")
	child.Errorf("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"service":"child"`)

	dup := parent.Duplicate(ulogger.WithLevel("DEBUG"))
	dup.Debugf("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("http", ulogger.WithWriter(&buf))
	logger.Infof("listening")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "http")
	assert.Contains(t, out, "listening")
	assert.NotContains(t, out, "\x1b[")
}

func TestTestLogger(t *testing.T) {
	logger := ulogger.New("anything", ulogger.WithLoggerType("test"))
	_, ok := logger.(ulogger.TestLogger)
	assert.True(t, ok)

	logger.Infof("nothing happens")
	assert.Equal(t, 0, logger.New("x").LogLevel())
}

func TestVerboseTestLogger(t *testing.T) {
	logger := ulogger.NewVerboseTestLogger(t)
	logger.Infof("verbose %d", 1)
	assert.Same(t, logger, logger.Duplicate())
}
