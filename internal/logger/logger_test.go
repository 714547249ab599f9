package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"staffbook/config"
)

func TestNewWithWriterLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(config.Log{Level: "warn"}, &buf)
	log.Info().Msg("hidden")
	log.Warn().Int64("chat_id", 7).Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "shown", entry["message"])
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "staffbook", entry["service"])
	require.EqualValues(t, 7, entry["chat_id"])
}

func TestNewWithWriterFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(config.Log{Level: "loud"}, &buf)
	log.Debug().Msg("hidden")
	require.Zero(t, buf.Len())

	log.Info().Msg("shown")
	require.Contains(t, buf.String(), `"message":"shown"`)
}
