package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Debug().Msg("hidden")
	log.Info().Int("year", 1995).Msg("built")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "debug suppressed at info level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "built", rec["message"])
	assert.Equal(t, float64(1995), rec["year"])
	assert.Contains(t, rec, "time")
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Output: &buf})
	log.Debug().Str("chart", "을해 갑신 기축 기사").Msg("analysis complete")

	out := buf.String()
	assert.Contains(t, out, "analysis complete")
	assert.Contains(t, out, "chart=")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
