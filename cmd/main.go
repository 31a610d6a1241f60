package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nbcommunication/instagram-media-display/internal/app"
	"github.com/nbcommunication/instagram-media-display/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	log := logger.New(logger.Opts{})

	app := fx.New(
		fx.Logger(log),
		app.Module,
	)

	if err := app.Start(context.Background()); err != nil {
		log.Error("Application start failed", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down")
	if err := app.Stop(context.Background()); err != nil {
		log.Error("Shutdown did not complete cleanly", "error", err)
		os.Exit(1)
	}
}
