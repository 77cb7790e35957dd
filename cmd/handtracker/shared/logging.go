package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures the application logger. Level comes from the
// config file but --debug always wins.
func SetupLogger(level string, debug bool) *log.Logger {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	if debug {
		parsed = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           parsed,
		ReportTimestamp: true,
	})
}

// SetupFileLogger writes logs to the given file instead of stderr,
// keeping the terminal free for the TUI.
func SetupFileLogger(path string, level string, debug bool) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	parsed, perr := log.ParseLevel(level)
	if perr != nil {
		parsed = log.InfoLevel
	}
	if debug {
		parsed = log.DebugLevel
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           parsed,
		ReportTimestamp: true,
	})
	return logger, f, nil
}
