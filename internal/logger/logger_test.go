package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	t.Run("level filters lower records", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(newHandler(&buf, "warn", false))

		log.Info("too quiet")
		log.Warn("loud enough")

		out := buf.String()
		assert.NotContains(t, out, "too quiet")
		assert.Contains(t, out, "loud enough")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(newHandler(&buf, "loudest", false))

		log.Debug("filtered")
		log.Info("kept")

		out := buf.String()
		assert.NotContains(t, out, "filtered")
		assert.Contains(t, out, "kept")
	})

	t.Run("json mode emits json", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(newHandler(&buf, "info", true))

		log.Info("hello", "board", "tb")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "tb", record["board"])
	})
}
