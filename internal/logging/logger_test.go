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
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", FormatJSON, &buf)
	require.NoError(t, err)

	logger.Debug("page received", Page(2), Items(50), Service("calendar"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "page received", entry["msg"])
	assert.Equal(t, float64(2), entry[KeyPage])
	assert.Equal(t, float64(50), entry[KeyItems])
	assert.Equal(t, "calendar", entry[KeyService])
}

func TestNewLogger_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", FormatText, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNewLogger_Errors(t *testing.T) {
	_, err := NewLogger("loud", FormatText, nil)
	assert.Error(t, err)

	_, err = NewLogger("info", "xml", nil)
	assert.Error(t, err)
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var l Logger = NewSlogAdapter(base)
	l.Debug("d", "k", 1)
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	out := buf.String()
	for _, msg := range []string{"msg=d", "msg=i", "msg=w", "msg=e", "k=1"} {
		assert.Contains(t, out, msg)
	}
	assert.Same(t, base, NewSlogAdapter(base).Logger())
	assert.NotNil(t, NewSlogAdapter(nil).Logger())
}
