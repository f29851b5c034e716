// Package logging builds the zerolog logger used by the simtex CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Level represents logging levels.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Options configures New.
type Options struct {
	Level   Level // default: info
	JSON    bool  // one JSON object per line instead of console output
	NoColor bool
	// TimeFormat applies to console output only (default: 15:04:05).
	TimeFormat string
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) zerolog.Logger {
	out := w
	if !opts.JSON {
		timeFormat := opts.TimeFormat
		if timeFormat == "" {
			timeFormat = "15:04:05"
		}
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    opts.NoColor,
			TimeFormat: timeFormat,
		}
	}

	return zerolog.New(out).
		Level(opts.Level.zerolog()).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l, nil
	case "":
		return LevelInfo, nil
	default:
		return "", fmt.Errorf("unknown log level %q (debug, info, warn, error)", s)
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
