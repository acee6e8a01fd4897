package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. PRETTY=1 switches to the console writer,
// DEBUG=1 lowers the level so append events from table.LogObserver show up.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if os.Getenv("PRETTY") == "1" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if os.Getenv("DEBUG") == "1" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return logger
}
