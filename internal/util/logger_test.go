package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("bogus"))
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "warn"})
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.Info("hidden")
	logger.Warnf("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 1")
}

func TestLoggerWithFieldsText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "debug"})
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.With(F("track", "t1")).Debug("split", F("at", 4.0))

	assert.Contains(t, buf.String(), "split at=4 track=t1")
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "info"})
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatJSON))

	logger.Info("seek", F("time", 2.5))

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "seek", entry.Message)
	assert.Equal(t, 2.5, entry.Fields["time"])
}

func TestLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "editor.log")
	logger, err := NewLogger(LoggerOptions{Level: "info", File: path})
	require.NoError(t, err)

	logger.Infof("hello %s", "file")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] hello file")
}

func TestGlobalLoggerNoopWithoutInit(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() {
		LogInfof("nothing %d", 1)
		LogWarn("nothing")
	})
}

func TestGlobalLoggerRouting(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "debug"})
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))
	SetLogger(logger)
	defer CloseLogger()

	LogDebugf("zoom %.1f", 2.0)
	LogErrorf("failed %s", "x")

	assert.Contains(t, buf.String(), "[DEBUG] zoom 2.0")
	assert.Contains(t, buf.String(), "[ERROR] failed x")
}

func TestCalculateFileFingerprint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"op":"play"}`), 0644))

	a, err := CalculateFileFingerprint(path)
	require.NoError(t, err)
	b, err := CalculateFileFingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 8)

	require.NoError(t, os.WriteFile(path, []byte(`{"op":"pause"}`), 0644))
	c, err := CalculateFileFingerprint(path)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = CalculateFileFingerprint(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
