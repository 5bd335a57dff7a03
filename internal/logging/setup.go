// Package logging builds the slog handlers used by the walletforms CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewHandler returns a handler for format, falling back to text for unknown
// formats.
func NewHandler(format, level string, writer io.Writer) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		return SetupHandlerJSON(level, writer)
	}
	return SetupHandlerText(level, writer)
}

// SetupHandlerText configures a charmbracelet text handler. "trace" adds the
// caller and timestamps, "debug" adds timestamps.
func SetupHandlerText(level string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := false
	lvl := log.InfoLevel
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		reportCaller = true
		reportTimestamp = true
		lvl = log.DebugLevel
	case "debug":
		reportTimestamp = true
		lvl = log.DebugLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
	})
}

// SetupHandlerJSON configures a JSON slog handler.
func SetupHandlerJSON(level string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: strings.EqualFold(strings.TrimSpace(level), "trace"),
	})
}

// ParseLevel maps a level name to a slog level. Unknown names yield info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a logger as the slog default and returns it.
func Setup(format, level string, writer io.Writer) *slog.Logger {
	logger := slog.New(NewHandler(format, level, writer))
	slog.SetDefault(logger)
	return logger
}
