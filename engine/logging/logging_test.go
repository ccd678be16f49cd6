package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuildLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := build(Config{Level: "warn"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", zap.String("stage", "vertex"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "vertex")
}

func TestBuildBadLevel(t *testing.T) {
	_, err := build(Config{Level: "loud"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.ErrorContains(t, err, `"loud"`)
}

func TestBuildFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.log")
	log, err := build(Config{File: path}, zapcore.AddSync(&bytes.Buffer{}))
	require.NoError(t, err)

	log.Error("shader compilation failed", zap.String("log", "0:3(1): error"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "shader compilation failed", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "0:3(1): error", entry["log"])
}
