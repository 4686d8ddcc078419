package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logAt     string
		wantWrite bool
	}{
		{name: "debug passes at debug", logLevel: "debug", logAt: "debug", wantWrite: true},
		{name: "debug filtered at info", logLevel: "info", logAt: "debug", wantWrite: false},
		{name: "warn passes at info", logLevel: "info", logAt: "warn", wantWrite: true},
		{name: "info filtered at error", logLevel: "error", logAt: "info", wantWrite: false},
		{name: "error always passes", logLevel: "error", logAt: "error", wantWrite: true},
		{name: "invalid level defaults to info", logLevel: "bogus", logAt: "debug", wantWrite: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tt.logLevel)

			switch tt.logAt {
			case "debug":
				l.Debug("message")
			case "info":
				l.Info("message")
			case "warn":
				l.Warn("message")
			case "error":
				l.Error("message")
			}

			if tt.wantWrite {
				assert.Contains(t, buf.String(), "message")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Info("scanned %d files in %s", 42, "dir")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "scanned 42 files in dir")
}

func TestLogger_NilReceiverIsSafe(t *testing.T) {
	var l *Logger
	l.Debug("nothing")
	l.Info("nothing")
	l.Warn("nothing")
	l.Error("nothing")
	assert.Empty(t, l.RunFile())
	assert.NoError(t, l.Close())
}

func TestNewWithFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	l, err := NewWithFile(nil, "debug", dir, "abcd1234")
	require.NoError(t, err)
	defer l.Close()

	l.Debug("walking %s", "root")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(l.RunFile())
	require.NoError(t, err)
	assert.Contains(t, string(data), "walking root")
	assert.Contains(t, l.RunFile(), "abcd1234")
}
