package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger fields
const (
	COMPONENT = "component"
	REQUEST   = "request_id"
	USER      = "user_id"
	EVENT     = "event"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// New configures the global logger. format is "json" or "console".
func New(level, format string) zerolog.Logger {
	return NewWriter(os.Stderr, level, format)
}

func NewWriter(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return log.Logger
}

// For returns a logger tagged with the component name.
func For(component string) zerolog.Logger {
	return log.With().Str(COMPONENT, component).Logger()
}
