package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/trackermeta/internal/modarchive"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitNotFound = 2
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(os.Stdout)
	err := cmd.ExecuteContext(ctx)
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status and logs it.
// Missing modules and unreadable pages are reported differently so scripts
// can tell a bad query from a broken scrape.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitFailure
	case modarchive.IsNotFound(err):
		log.Warn().Err(err).Msg("not found")
		return exitNotFound
	case modarchive.IsMalformed(err):
		log.Error().Err(err).Msg("could not read archive page")
		return exitFailure
	default:
		log.Error().Err(err).Msg("run failed")
		return exitFailure
	}
}
