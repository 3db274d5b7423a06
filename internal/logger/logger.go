// Package logger holds the process-wide structured logger. Packages log
// through logger.Log; main reconfigures it once from config.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Log = slog.New(newHandler(os.Stdout, "info", false))

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Initialize replaces the global logger and the slog default with one
// configured from the public config. Unknown levels fall back to info.
func Initialize(level string, useJSON bool) {
	Log = slog.New(newHandler(os.Stdout, level, useJSON))
	slog.SetDefault(Log)
}

func newHandler(w io.Writer, level string, useJSON bool) slog.Handler {
	logLevel, ok := levels[strings.ToLower(level)]
	if !ok {
		logLevel = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	}
	if useJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
