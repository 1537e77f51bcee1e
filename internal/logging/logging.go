// Package logging builds the zerolog loggers shared by the simulation and
// its frontends.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the log line encoding.
type Format string

const (
	// FormatConsole writes human readable lines.
	FormatConsole Format = "console"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// ParseLevel converts a level name into a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "OFF", "DISABLED":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New builds a timestamped logger writing to w. A nil writer means stderr.
func New(w io.Writer, level string, format Format) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !isTerminal(w)}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Component derives a child logger tagged with the component name.
func Component(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

// Once wraps a logger and emits each keyed diagnostic at most one time. It is
// meant for dependency-not-ready conditions that recur every tick.
type Once struct {
	log  zerolog.Logger
	seen map[string]struct{}
}

// NewOnce constructs a Once around log.
func NewOnce(log zerolog.Logger) *Once {
	return &Once{log: log}
}

// Warn logs msg under key unless key has already been reported.
func (o *Once) Warn(key, msg string) {
	if o == nil {
		return
	}
	if _, ok := o.seen[key]; ok {
		return
	}
	if o.seen == nil {
		o.seen = make(map[string]struct{})
	}
	o.seen[key] = struct{}{}
	o.log.Warn().Str("dependency", key).Msg(msg)
}

// Reported tells whether key has already been logged.
func (o *Once) Reported(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.seen[key]
	return ok
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
