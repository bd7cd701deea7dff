// pkg/logging/logging_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (temp dirs only)
// PURPOSE: Test logger level selection, log file placement and helpers

package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default_warn_level", 0, zerolog.WarnLevel},
		{"info_level", 1, zerolog.InfoLevel},
		{"debug_level", 2, zerolog.DebugLevel},
		{"trace_level", 3, zerolog.TraceLevel},
		{"high_verbosity_defaults_to_trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "state", "nox.log")

			SetupLogger(tt.verbosity, logPath)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should exist at %s", logPath)
		})
	}
}

func TestSetupLogger_ConsoleOnly(t *testing.T) {
	SetupLogger(0, "")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	defer func() { log.Logger = original }()
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("store")
	logger.Warn().Msg("state file reset")

	assert.Contains(t, buf.String(), `"component":"store"`)
	assert.Contains(t, buf.String(), "state file reset")
}

func TestTrackOperation(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := TrackOperation(logger, "install")
	require.Contains(t, buf.String(), "Operation started")

	done(nil)
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), `"duration"`)

	buf.Reset()
	TrackOperation(logger, "uninstall")(errors.New("hook exited 1"))
	assert.Contains(t, buf.String(), "Operation failed")
	assert.Contains(t, buf.String(), "hook exited 1")
}

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, Level(-1))
	assert.Equal(t, zerolog.InfoLevel, Level(1))
	assert.Equal(t, zerolog.TraceLevel, Level(9))
}

func TestConsoleWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv(EnvLogFormat, "json")
	assert.Equal(t, &buf, consoleWriter(&buf))

	t.Setenv(EnvLogFormat, "")
	_, isConsole := consoleWriter(&buf).(zerolog.ConsoleWriter)
	assert.True(t, isConsole)
}
