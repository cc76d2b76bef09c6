package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/eugenenazirov/coveralls-ci/internal/application"
	"github.com/eugenenazirov/coveralls-ci/internal/config"
	"github.com/eugenenazirov/coveralls-ci/internal/env"
	"github.com/eugenenazirov/coveralls-ci/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	c := newCLI()
	inv, err := c.parse(os.Args[1:])
	c.app.FatalIfError(err, "")

	environment := env.New()

	settings, err := config.LoadSettings(&inv.settings, environment)
	if err != nil {
		panic(fmt.Sprintf("failed to load settings: %v", err))
	}

	logger, err := logging.New(settings.LogLevel, settings.LogEncoding)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := cancelOnSignal(context.Background(), logger)
	defer cancel()

	app := application.New(settings, logger, application.WithEnv(environment))
	if _, err := app.Run(ctx, inv.run); err != nil {
		logger.Fatal("failed to report coverage", zap.Error(err))
	}
}

// cancelOnSignal returns a context cancelled on SIGINT or SIGTERM.
func cancelOnSignal(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-quit:
			logger.Info("received signal, cancelling", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(quit)
		cancel()
	}
}
