package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogFormat set to "json" makes console output structured
const EnvLogFormat = "NOX_LOG_FORMAT"

// Level maps the -v count to a log level: warnings by default, then info,
// debug and trace
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger. Console output goes to stderr;
// when logFile is set every record is also appended to it as JSON lines, so
// a failed run can be diagnosed after the fact.
func SetupLogger(verbosity int, logFile string) {
	zerolog.SetGlobalLevel(Level(verbosity))

	writers := []io.Writer{consoleWriter(os.Stderr)}
	var fileErr error
	if logFile != "" {
		var file *os.File
		if file, fileErr = openLogFile(logFile); fileErr == nil {
			writers = append(writers, file)
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Log file unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

func consoleWriter(out io.Writer) io.Writer {
	if strings.EqualFold(os.Getenv(EnvLogFormat), "json") {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// GetLogger returns a logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// TrackOperation logs the start of an operation at debug level and returns
// a function that logs how it ended: completed, or failed with err
func TrackOperation(logger zerolog.Logger, operation string) func(err error) {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func(err error) {
		if err != nil {
			logger.Debug().Err(err).
				Str("operation", operation).
				Dur("duration", time.Since(start)).
				Msg("Operation failed")
			return
		}
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
