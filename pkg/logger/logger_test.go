package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProduccionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "bodega-api", Out: &buf})

	l.Debug().Msg("oculto")
	l.Info().Int64("item_id", 1).Msg("item creado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "item creado", entry["message"])
	assert.Equal(t, float64(1), entry["item_id"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "bodega-api", entry["service"])
}

func TestNew_InstalaLoggerGlobal(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Env: "production", Level: "warn", Out: &buf})

	log.Info().Msg("filtrado")
	log.Warn().Msg("visible")
	assert.NotContains(t, buf.String(), "filtrado")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "service")
}

func TestNew_DesarrolloEscribeConsola(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "development", Level: "debug", Out: &buf})
	l.Debug().Msg("hola")
	assert.Contains(t, buf.String(), "hola")
	assert.NotContains(t, buf.String(), "{")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zerolog.TraceLevel, parseLevel(" trace "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
}
