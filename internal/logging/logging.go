// Package logging configures the diagnostic logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	// ModuleFieldName is the field carrying the emitting component.
	ModuleFieldName   = "module"
	// DefaultTimeFormat is the timestamp layout of console output.
	DefaultTimeFormat = "15:04:05.000"
)

// New returns a console logger writing to w. Only warnings and errors are
// written unless verbose is set.
func New(w io.Writer, verbose bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	parts := []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, ModuleFieldName, zerolog.MessageFieldName}
	writer := zerolog.ConsoleWriter{
		Out:           w,
		NoColor:       true,
		TimeFormat:    DefaultTimeFormat,
		PartsOrder:    parts,
		FieldsExclude: []string{ModuleFieldName},
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Module returns a child of logger tagged with module.
func Module(logger zerolog.Logger, module string) zerolog.Logger {
	return logger.With().Str(ModuleFieldName, module).Logger()
}
