// Package obs provides structured logging setup for Shelfstack.
package obs

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceName is attached to every component logger
const ServiceName = "shelfstack"

// InitLogger sets the global level from a level name. Unknown or empty
// names fall back to info; ENV=dev switches to console output.
func InitLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("ENV") == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// Logger returns a logger tagged with the service and the given component,
// such as "api", "catalog" or "watcher"
func Logger(component string) zerolog.Logger {
	return log.With().
		Str("service", ServiceName).
		Str("component", component).
		Logger()
}
