package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment falls back to Development for unknown values.
func ParseEnvironment(v string) Environment {
	switch Environment(v) {
	case Production, Staging, Testing:
		return Environment(v)
	default:
		return Development
	}
}

func (e Environment) IsProduction() bool {
	return e == Production
}

// Init configures the global logger. Production logs JSON at info level,
// everything else gets a console writer at debug level.
func Init(env Environment) {
	InitWithWriter(env, os.Stderr)
}

func InitWithWriter(env Environment, w io.Writer) {
	switch env {
	case Production:
		log.Logger = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	case Testing:
		log.Logger = zerolog.New(w).Level(zerolog.WarnLevel)
	default:
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Caller().Logger().Level(zerolog.DebugLevel)
	}
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

// With returns a child logger carrying a component field.
func With(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
