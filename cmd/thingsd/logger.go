package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

func newLogger(format, level string, w io.Writer) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Str("service", "thingsd").Logger()
}

// zerologLevel maps the request log levels onto zerolog's.
func zerologLevel(level string) zerolog.Level {
	switch level {
	case "off":
		return zerolog.Disabled
	case "error":
		return zerolog.ErrorLevel
	case "debug":
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
