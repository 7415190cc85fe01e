package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/fnvalidacpf/internal/config"
)

func TestNewLoggerService_DisabledWithoutLicense(t *testing.T) {
	ls := NewLoggerService(config.DefaultObservabilityConfig())

	assert.Nil(t, ls.GetApplication())
	assert.NotPanics(t, ls.Shutdown)
}

func TestNilLoggerService(t *testing.T) {
	var ls *LoggerService

	assert.Nil(t, ls.GetApplication())
	assert.NotPanics(t, ls.Shutdown)
}

func TestNewLogger_Fields(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"

	var buf bytes.Buffer
	log := newLogger(&buf, zerolog.InfoLevel, cfg)

	log.Debug().Msg("hidden")
	log.Info().Msg("starting CPF validation")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "starting CPF validation", entry["message"])
	assert.Equal(t, "fnvalidacpf", entry["service"])
	assert.Equal(t, "production", entry["environment"])
	assert.NotContains(t, entry, "caller")
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	traced := WithTraceContext(log, nil)
	traced.Info().Msg("x")

	assert.NotContains(t, buf.String(), "trace.id")
}

func TestFromContext(t *testing.T) {
	nop := FromContext(context.Background())
	require.NotNil(t, nop)

	var buf bytes.Buffer
	l := zerolog.New(&buf)

	ctx := ToContext(context.Background(), &l)
	FromContext(ctx).Info().Msg("from context")

	assert.Contains(t, buf.String(), "from context")
}
