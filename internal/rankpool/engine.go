package rankpool

import (
	"fmt"

	"rank-pooler/internal/logger"
	"rank-pooler/internal/opencv/safe"

	"gocv.io/x/gocv"
)

const (
	// OutputMin and OutputMax bound the normalized rank-pooled image.
	OutputMin = 0.0
	OutputMax = 255.0
)

// Engine turns an ordered frame sequence into a single rank-pooled frame.
// It keeps no state between calls.
type Engine struct {
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{logger: log}
}

// Compute aggregates frames (oldest first) and normalizes the result to
// [OutputMin, OutputMax] as a 32-bit float Mat. The caller owns the input
// frames and the returned Mat.
func (e *Engine) Compute(frames []gocv.Mat) (gocv.Mat, error) {
	raw, err := e.Aggregate(frames)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer raw.Close()

	return Normalize(raw), nil
}

// Aggregate returns the weighted sum of frames in 64-bit float, with the
// channel count of the inputs. Inputs are not modified.
func (e *Engine) Aggregate(frames []gocv.Mat) (gocv.Mat, error) {
	if err := Validate(frames); err != nil {
		return gocv.Mat{}, err
	}

	weights := Weights(len(frames))
	e.logger.Debug("Engine", "rank pooling weights", map[string]interface{}{
		"frames":  len(frames),
		"weights": weights,
	})

	ref := frames[0]
	sum := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0),
		ref.Rows(), ref.Cols(), floatType(gocv.MatTypeCV64F, ref.Channels()))

	promoted := gocv.NewMat()
	defer promoted.Close()

	for t := range frames {
		frames[t].ConvertTo(&promoted, gocv.MatTypeCV64F)
		gocv.AddWeighted(sum, 1, promoted, weights[t], 0, &sum)
	}

	return sum, nil
}

// Normalize rescales raw so that its global minimum (over all channels) maps
// to OutputMin and its maximum to OutputMax. A constant input yields zeros.
func Normalize(raw gocv.Mat) gocv.Mat {
	scaled := gocv.NewMat()
	defer scaled.Close()

	gocv.Normalize(raw, &scaled, OutputMin, OutputMax, gocv.NormMinMax)

	out := gocv.NewMat()
	scaled.ConvertTo(&out, gocv.MatTypeCV32F)
	return out
}

// Validate checks that frames is non-empty and every frame matches the first
// in size and type.
func Validate(frames []gocv.Mat) error {
	if len(frames) == 0 {
		return ErrEmptySequence
	}

	for i := range frames {
		if err := safe.ValidateMatForOperation(&frames[i], "rank pooling"); err != nil {
			return &FrameError{Index: i, Err: fmt.Errorf("%w: %v", ErrMalformedFrame, err)}
		}
		if i == 0 {
			continue
		}
		if err := safe.ValidateSameShape(&frames[0], &frames[i]); err != nil {
			return &FrameError{Index: i, Err: fmt.Errorf("%w: %v", ErrShapeMismatch, err)}
		}
	}

	return nil
}

// floatType combines a float depth with a channel count.
func floatType(depth gocv.MatType, channels int) gocv.MatType {
	return gocv.MatType(int(depth) + (channels-1)*8)
}
