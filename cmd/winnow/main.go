// winnow finds source code shared between files by comparing winnowed
// k-gram fingerprints.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/RishiKendai/winnow/cmd/winnow/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		log.Error().Err(err).Msg("winnow failed")
		stop()
		os.Exit(1)
	}
}
