package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/johnquangdev/meeting-minutes/internal/app"
	"github.com/johnquangdev/meeting-minutes/internal/cli"
	"github.com/johnquangdev/meeting-minutes/internal/output"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := &cli.Dependencies{
		Config: cfg,
		Logger: logger,
		Open: func(ctx context.Context) (*app.App, error) {
			return app.New(ctx, cfg, logger)
		},
	}
	defer deps.Close()

	return cli.NewRootCmd(deps).ExecuteContext(ctx)
}
