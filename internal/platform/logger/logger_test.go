package logger_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silenceStdio redirects stdout and stderr for the duration of fn and returns
// what was written to stderr.
func silenceStdio(t *testing.T, fn func()) string {
	t.Helper()

	origStdout, origStderr := os.Stdout, os.Stderr
	origDefault := slog.Default()

	stdoutR, stdoutW, err := os.Pipe()
	require.NoError(t, err)
	stderrR, stderrW, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout, os.Stderr = stdoutW, stderrW

	fn()

	os.Stdout, os.Stderr = origStdout, origStderr
	slog.SetDefault(origDefault)
	require.NoError(t, stdoutW.Close())
	require.NoError(t, stderrW.Close())

	_, _ = io.Copy(io.Discard, stdoutR)
	var stderr bytes.Buffer
	_, _ = io.Copy(&stderr, stderrR)
	return stderr.String()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"DEBUG", slog.LevelDebug, true},
		{"Info", slog.LevelInfo, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := logger.ParseLevel(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSetup(t *testing.T) {
	var (
		log *slog.Logger
		err error
	)
	stderr := silenceStdio(t, func() {
		log, err = logger.Setup(config.ServerConfig{LogLevel: "debug", Port: 8080})
	})

	require.NoError(t, err)
	require.NotNil(t, log)
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
	assert.Empty(t, stderr)
}

func TestSetupInvalidLevel(t *testing.T) {
	var log *slog.Logger
	stderr := silenceStdio(t, func() {
		var err error
		log, err = logger.Setup(config.ServerConfig{LogLevel: "invalid_level", Port: 8080})
		require.NoError(t, err)
	})

	require.NotNil(t, log)
	assert.Contains(t, stderr, "invalid log level configured")
	assert.Contains(t, stderr, "invalid_level")
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewWritesJSON(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	log := logger.New(buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("visible", "feature", "chat")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0]["msg"])
	assert.Equal(t, "chat", entries[0]["feature"])
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger := slog.Default()
	customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "nil_context_returns_default",
			ctx:      nil,
			expected: defaultLogger,
		},
		{
			name:     "context_without_logger_returns_default",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
		{
			name:     "context_with_logger_returns_context_logger",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			expected: customLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			//nolint:staticcheck // nil context is part of the contract under test
			result := logger.FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Same(t, tt.expected, result)
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Run("valid_logger", func(t *testing.T) {
		customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := logger.WithLogger(context.Background(), customLogger)

		assert.Same(t, customLogger, logger.FromContext(ctx))
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}
