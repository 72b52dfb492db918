package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"fleet-dashboard-service/internal/config"
)

func New(environment string) zerolog.Logger {
	return newWithWriter(environment, os.Stdout)
}

func newWithWriter(environment string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	var writer io.Writer = out
	if config.IsDevelopment(environment) {
		level = zerolog.DebugLevel
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", "fleet-dashboard").
		Logger()
}
