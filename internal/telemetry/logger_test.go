package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("nonsense"))
}

func TestPrettyHandler_EnabledRespectsLevel(t *testing.T) {
	h := &prettyHandler{w: &bytes.Buffer{}, level: slog.LevelWarn}
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_HandleFormatsLevelPrefix(t *testing.T) {
	var buf bytes.Buffer
	h := &prettyHandler{w: &buf, level: slog.LevelDebug}

	err := h.Handle(context.Background(), slog.Record{Message: "fit complete", Level: slog.LevelInfo})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "fit complete")
	assert.NotContains(t, buf.String(), "ERROR:")

	buf.Reset()
	assert.NoError(t, h.Handle(context.Background(), slog.Record{Message: "bad input", Level: slog.LevelError}))
	assert.Contains(t, buf.String(), "ERROR: bad input")
}

func TestInit_SetsDefaultLoggerAndLFallsBack(t *testing.T) {
	Init(slog.LevelInfo)
	assert.NotNil(t, L())
}
