// Package logger builds the zerolog logger shared by the bot and storage
// wiring.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"staffbook/config"
)

// New returns a logger writing JSON to stdout, or human readable console
// output when cfg.Pretty is set. An unknown level falls back to info.
func New(cfg config.Log) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	}
	return NewWithWriter(cfg, w)
}

func NewWithWriter(cfg config.Log, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("service", "staffbook").Logger()
}
