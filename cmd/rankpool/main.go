package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rank-pooler/internal/app"
	"rank-pooler/internal/config"
	"rank-pooler/internal/logger"
	"rank-pooler/internal/shutdown"

	"github.com/spf13/pflag"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse(filepath.Base(os.Args[0]), args, os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.AppName, err)
		return exitUsage
	}

	appLogger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.AppName, err)
		return exitUsage
	}

	shutdownMgr := shutdown.NewManager(context.Background(), appLogger)
	shutdownMgr.Listen()
	defer shutdownMgr.Shutdown()

	application := app.NewApplication(cfg, appLogger)
	if err := application.Run(shutdownMgr.Context()); err != nil {
		appLogger.Error("Application", err, map[string]interface{}{
			"source": cfg.Source,
		})
		return exitFailure
	}

	appLogger.Info("Application", "run completed", nil)
	return exitOK
}

func newLogger(cfg *config.Config) (*logger.ZerologAdapter, error) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logger.New(level, cfg.Log.Format)
}
