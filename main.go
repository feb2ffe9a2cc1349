package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/fretelweb/go-validator/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New() // loads .env automatically

	if err := application.Run(ctx); err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		logger.Error().Err(err).Msg("Application stopped")
		stop()
		os.Exit(1)
	}
}
