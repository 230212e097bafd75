package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreatePrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	log := CreatePrettyLogger(false, &buf).Named("pumpfun-mc")

	log.Debug("hidden")
	log.Info("Derived bonding curve", zap.String("mint", "8VfU...pump"))
	log.Error("Lookup failed", zap.String("stage", "fetch"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, ColorGreen+"[INFO]"+ColorReset)
	assert.Contains(t, out, ColorRed+"[ERROR]"+ColorReset)
	assert.Contains(t, out, "pumpfun-mc")
	assert.Contains(t, out, "Derived bonding curve")
	// fields are kept
	assert.Contains(t, out, `"stage": "fetch"`)
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestCreatePrettyLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	log := CreatePrettyLogger(true, &buf)

	log.Debug("visible")
	assert.Contains(t, buf.String(), ColorCyan+"[DEBUG]"+ColorReset)
	assert.Contains(t, buf.String(), "visible")
}

func TestCreateJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log := CreateJSONLogger(false, &buf).Named("dia")

	log.Info("Fetched SOL quote", zap.Float64("sol_usd", 150))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "dia", entry["logger"])
	assert.Equal(t, "Fetched SOL quote", entry["msg"])
	assert.Equal(t, 150.0, entry["sol_usd"])
}
