package telemetry

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.elastic.co/ecszerolog"
)

const serviceField = "service"

// NewLogger builds the process logger. format is console, json or ecs; an
// unknown level falls back to info.
func NewLogger(out io.Writer, format, level, service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	switch format {
	case "ecs":
		logger = ecszerolog.New(out)
	case "console":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	default:
		logger = zerolog.New(out).With().Timestamp().Logger()
	}
	return logger.Level(lvl).With().Str(serviceField, service).Logger()
}

// SetGlobal installs logger as the package-level zerolog logger used by
// stores and background code.
func SetGlobal(logger zerolog.Logger) {
	log.Logger = logger
	zerolog.SetGlobalLevel(logger.GetLevel())
}
