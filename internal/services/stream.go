package services

import (
	"context"
	"errors"
	"fmt"

	"rank-pooler/internal/debug/timing"
	"rank-pooler/internal/logger"
	"rank-pooler/internal/pipeline"
	"rank-pooler/internal/rankpool"
	"rank-pooler/internal/window"

	"github.com/google/uuid"
	"gocv.io/x/gocv"
)

// StopReason tells why a stream run ended without error
type StopReason string

const (
	StopEndOfStream StopReason = "end_of_stream"
	StopQuitKey     StopReason = "quit_key"
	StopCancelled   StopReason = "cancelled"
	StopMaxFrames   StopReason = "max_frames"
)

// StreamResult summarizes one stream session
type StreamResult struct {
	SessionID string
	Frames    int
	Reason    StopReason
}

// StreamService rank-pools a sliding window over a frame stream
type StreamService struct {
	engine    *rankpool.Engine
	capacity  int
	maxFrames int
	tracker   *timing.Tracker
	logger    logger.Logger
}

// NewStreamService creates a stream service with the given window capacity.
// maxFrames <= 0 means no limit.
func NewStreamService(
	engine *rankpool.Engine,
	capacity, maxFrames int,
	tracker *timing.Tracker,
	log logger.Logger,
) *StreamService {
	if log == nil {
		log = logger.NewNop()
	}
	if tracker == nil {
		tracker = timing.NewTracker(log)
	}
	return &StreamService{
		engine:    engine,
		capacity:  capacity,
		maxFrames: maxFrames,
		tracker:   tracker,
		logger:    log,
	}
}

// Run consumes source until it ends, the display asks to quit, ctx is
// cancelled or the frame limit is reached. Every incoming frame re-pools the
// whole window. The caller keeps ownership of source and display.
func (ss *StreamService) Run(ctx context.Context, source pipeline.FrameSource, display pipeline.Display) (StreamResult, error) {
	result := StreamResult{SessionID: uuid.NewString()}

	buffer, err := window.New[gocv.Mat](ss.capacity, ss.logger,
		window.WithRelease(func(m gocv.Mat) { m.Close() }))
	if err != nil {
		return result, err
	}
	defer buffer.Drain()

	ss.logger.Info("StreamService", "stream session started", map[string]interface{}{
		"session":    result.SessionID,
		"window":     ss.capacity,
		"max_frames": ss.maxFrames,
	})

	defer func() {
		summary := ss.tracker.Summarize("rank_pool")
		ss.logger.Info("StreamService", "stream session finished", map[string]interface{}{
			"session":        result.SessionID,
			"frames":         result.Frames,
			"reason":         string(result.Reason),
			"compute_avg":    summary.Mean.String(),
			"compute_stddev": summary.StdDev.String(),
			"compute_max":    summary.Max.String(),
		})
	}()

	for {
		if ctx.Err() != nil {
			result.Reason = StopCancelled
			return result, nil
		}

		frame, err := source.Next()
		if errors.Is(err, pipeline.ErrEndOfStream) {
			result.Reason = StopEndOfStream
			return result, nil
		}
		if err != nil {
			return result, fmt.Errorf("frame acquisition failed: %w", err)
		}

		buffer.Slide(frame)

		tctx := ss.tracker.StartTiming("rank_pool")
		pooled, err := ss.engine.Compute(buffer.Snapshot())
		ss.tracker.EndTiming(tctx)
		if err != nil {
			return result, fmt.Errorf("rank pooling failed at frame %d: %w", result.Frames, err)
		}

		quit := display.Show(pooled)
		pooled.Close()
		result.Frames++

		if quit {
			result.Reason = StopQuitKey
			return result, nil
		}
		if ss.maxFrames > 0 && result.Frames >= ss.maxFrames {
			result.Reason = StopMaxFrames
			return result, nil
		}
	}
}
