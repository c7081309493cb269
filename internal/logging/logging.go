package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects where logs go.
type Options struct {
	Level   string
	File    string    // optional, appended to without colors
	Console io.Writer // defaults to stderr
	NoColor bool
}

// ParseLevel maps a config level name to a zerolog level. Unknown names
// fall back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the root logger. The returned closer releases the log file
// and is safe to call when no file was opened.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.RFC3339,
			NoColor:    opts.NoColor,
		},
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		closer = f
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(opts.Level)).
		With().Timestamp().Logger()
	return log, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
