// Package testlog routes the global logger into the running test.
package testlog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/eppctl/internal/logging"
)

// Start configures test logging and sends global log output to t.Log for the
// duration of the test.
func Start(t testing.TB) {
	t.Helper()
	logging.ConfigureTests()

	prev := log.Logger
	log.Logger = zerolog.New(zerolog.NewTestWriter(t)).
		Level(zerolog.GlobalLevel()).
		With().Str("test", t.Name()).Logger()
	t.Cleanup(func() {
		log.Logger = prev
	})
}
