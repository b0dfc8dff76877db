// Package logging builds the zerolog.Logger every other package receives
// by dependency injection (grounded on the slowdrip-miner agent's
// log zerolog.Logger field/constructor pattern from the retrieved pack).
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors the zerolog levels an embedder can select without
// importing zerolog directly.
type Level = zerolog.Level

const (
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
	LevelError = zerolog.ErrorLevel
)

// New builds a human-readable console logger at the given level.
func New(level Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
