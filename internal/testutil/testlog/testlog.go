package testlog

import (
	"testing"

	"github.com/danmuck/grantwire/internal/logging"
	"github.com/rs/zerolog"
)

// Start configures test logging and returns a logger that writes through t.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	logging.ConfigureTests()
	logger := zerolog.New(zerolog.NewTestWriter(t)).With().Str("test", t.Name()).Logger()
	logger.Info().Msg("start")
	return logger
}
