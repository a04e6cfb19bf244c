package main

import (
	"io"

	"github.com/rs/zerolog"
)

// zerologLogger implements calculation.Logger on top of zerolog
type zerologLogger struct {
	log zerolog.Logger
}

func newDebugLogger(w io.Writer) zerologLogger {
	l := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Str("component", "calculation").Logger()
	return zerologLogger{log: l}
}

func (z zerologLogger) Debugf(format string, args ...any) { z.log.Debug().Msgf(format, args...) }
func (z zerologLogger) Infof(format string, args ...any)  { z.log.Info().Msgf(format, args...) }
func (z zerologLogger) Warnf(format string, args ...any)  { z.log.Warn().Msgf(format, args...) }
func (z zerologLogger) Errorf(format string, args ...any) { z.log.Error().Msgf(format, args...) }
