package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"trace", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestSetupHandlerText(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(SetupHandlerText("warn", buf))

	logger.Info("hidden message")
	logger.Warn("field rejected", "path", "dailyLimit")

	output := buf.String()
	assert.NotContains(t, output, "hidden message")
	assert.Contains(t, output, "field rejected")
	assert.Contains(t, output, "dailyLimit")
}

func TestSetupHandlerJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(SetupHandlerJSON("debug", buf))

	logger.Debug("form rejected", "errors", 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "form rejected", entry["msg"])
	assert.InDelta(t, 1, entry["errors"], 0)
	assert.NotContains(t, entry, "source")
}

func TestNewHandler_SelectsFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	slog.New(NewHandler("JSON", "info", buf)).Info("loaded")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))

	buf.Reset()
	slog.New(NewHandler("yaml", "info", buf)).Info("loaded")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
	assert.Contains(t, buf.String(), "loaded")
}

func TestSetup_InstallsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	buf := &bytes.Buffer{}
	logger := Setup(FormatJSON, "info", buf)
	require.NotNil(t, logger)

	slog.Info("through default")
	assert.Contains(t, buf.String(), "through default")
}
