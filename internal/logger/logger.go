package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger on stderr so the rendered report keeps
// stdout to itself.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
