package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, "production", "info")

	l.Info().Str("order", "7").Msg("created")
	l.Debug().Msg("dropped")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "created", line["message"])
	assert.Equal(t, "7", line["order"])
	assert.Equal(t, "orderdesk", line["service"])
}

func TestNew_BadLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, "production", "loud")

	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestWithCtx(t *testing.T) {
	var buf bytes.Buffer
	tagged := logger.New(&buf, "production", "debug").With().Str("request_id", "abc").Logger()

	ctx := logger.InjectLogger(context.Background(), tagged)
	logger.WithCtx(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)

	assert.Same(t, &logger.L, logger.WithCtx(context.Background()))
}
