// Package logx configures the process-wide zerolog logger.
package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects the output format and verbosity.
type Options struct {
	// Level is one of zerolog's level strings (debug, info, warn, error).
	// Unknown values fall back to info.
	Level string
	// Pretty switches to the console writer for interactive runs.
	Pretty bool
	// Writer overrides the output, defaulting to stderr.
	Writer io.Writer
}

// New builds a logger from the given options.
func New(opts Options) zerolog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if opts.Pretty {
		w = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = w
		})
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Init replaces the global logger used by packages that log through
// zerolog/log.
func Init(opts Options) {
	log.Logger = New(opts)
}
