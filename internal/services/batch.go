package services

import (
	"context"
	"fmt"

	"rank-pooler/internal/debug/timing"
	"rank-pooler/internal/logger"
	"rank-pooler/internal/pipeline"
	"rank-pooler/internal/rankpool"
)

// BatchService rank-pools a whole directory of images into one output file
type BatchService struct {
	loader  pipeline.ImageLoader
	saver   pipeline.ImageSaver
	engine  *rankpool.Engine
	tracker *timing.Tracker
	logger  logger.Logger
}

// NewBatchService creates a new batch service
func NewBatchService(
	loader pipeline.ImageLoader,
	saver pipeline.ImageSaver,
	engine *rankpool.Engine,
	tracker *timing.Tracker,
	log logger.Logger,
) *BatchService {
	if log == nil {
		log = logger.NewNop()
	}
	if tracker == nil {
		tracker = timing.NewTracker(log)
	}
	return &BatchService{
		loader:  loader,
		saver:   saver,
		engine:  engine,
		tracker: tracker,
		logger:  log,
	}
}

// Run loads srcDir, computes the rank-pooled image and writes it to outPath
func (bs *BatchService) Run(ctx context.Context, srcDir, outPath string) error {
	frames, err := bs.loader.LoadDirectory(srcDir)
	if err != nil {
		return fmt.Errorf("batch load failed: %w", err)
	}
	defer func() {
		for i := range frames {
			frames[i].Close()
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	tctx := bs.tracker.StartTiming("rank_pool")
	pooled, err := bs.engine.Compute(frames)
	bs.tracker.EndTiming(tctx)
	if err != nil {
		return fmt.Errorf("rank pooling failed: %w", err)
	}
	defer pooled.Close()

	if err := bs.saver.SaveToPath(outPath, pooled); err != nil {
		return fmt.Errorf("batch save failed: %w", err)
	}

	bs.logger.Info("BatchService", "rank-pooled image written", map[string]interface{}{
		"source":      srcDir,
		"output":      outPath,
		"frames":      len(frames),
		"weight_sum":  rankpool.WeightSum(len(frames)),
		"compute_avg": bs.tracker.GetAverageTime("rank_pool").String(),
	})

	return nil
}
