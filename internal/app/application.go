package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rank-pooler/internal/config"
	"rank-pooler/internal/debug/timing"
	"rank-pooler/internal/logger"
	"rank-pooler/internal/pipeline"
	"rank-pooler/internal/rankpool"
	"rank-pooler/internal/services"
)

const (
	AppName    = "rankpool"
	AppVersion = "1.0.0"
)

// Mode is the input kind selected from the source path
type Mode string

const (
	ModeStream Mode = "stream"
	ModeBatch  Mode = "batch"
)

var ErrUnsupportedSource = errors.New("source is neither a file nor a directory")

// DetectMode maps a file to stream mode and a directory to batch mode.
func DetectMode(source string) (Mode, error) {
	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("cannot access source: %w", err)
	}

	switch {
	case info.IsDir():
		return ModeBatch, nil
	case info.Mode().IsRegular():
		return ModeStream, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}
}

type Application struct {
	cfg     *config.Config
	logger  logger.Logger
	engine  *rankpool.Engine
	tracker *timing.Tracker

	// openDisplay is replaceable so stream runs can be driven headless.
	openDisplay func(cfg *config.Config) pipeline.Display
}

func NewApplication(cfg *config.Config, log logger.Logger) *Application {
	return &Application{
		cfg:         cfg,
		logger:      log,
		engine:      rankpool.NewEngine(log),
		tracker:     timing.NewTracker(log),
		openDisplay: defaultDisplay,
	}
}

func defaultDisplay(cfg *config.Config) pipeline.Display {
	if !cfg.Display.Enabled {
		return pipeline.NopDisplay{}
	}
	return pipeline.NewWindowDisplay(cfg.Display.Title, cfg.Display.KeyDelayMS, cfg.QuitRune())
}

func (a *Application) Run(ctx context.Context) error {
	mode, err := DetectMode(a.cfg.Source)
	if err != nil {
		return err
	}

	a.logger.Info("Application", "starting run", map[string]interface{}{
		"version": AppVersion,
		"mode":    string(mode),
		"source":  a.cfg.Source,
	})

	switch mode {
	case ModeBatch:
		return a.runBatch(ctx)
	default:
		return a.runStream(ctx)
	}
}

func (a *Application) runBatch(ctx context.Context) error {
	outPath := filepath.Join(a.cfg.Dest, a.cfg.Batch.OutputName)

	batch := services.NewBatchService(
		pipeline.NewDirectoryLoader(a.cfg.Batch.Pattern, a.logger, a.tracker),
		pipeline.NewFileSaver(a.cfg.Batch.JPEGQuality, a.logger, a.tracker),
		a.engine,
		a.tracker,
		a.logger,
	)

	return batch.Run(ctx, a.cfg.Source, outPath)
}

func (a *Application) runStream(ctx context.Context) error {
	source, err := pipeline.OpenVideo(a.cfg.Source, a.logger)
	if err != nil {
		return err
	}
	defer source.Close()

	display := a.openDisplay(a.cfg)
	defer display.Close()

	stream := services.NewStreamService(a.engine, a.cfg.Stream.Window, a.cfg.Stream.MaxFrames, a.tracker, a.logger)
	_, err = stream.Run(ctx, source, display)
	return err
}
