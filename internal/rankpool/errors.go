package rankpool

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySequence is returned when the engine receives no frames.
	ErrEmptySequence = errors.New("rankpool: empty frame sequence")
	// ErrMalformedFrame marks a frame that holds no usable pixel data.
	ErrMalformedFrame = errors.New("rankpool: malformed frame")
	// ErrShapeMismatch marks a frame whose size or type differs from the first frame.
	ErrShapeMismatch = errors.New("rankpool: frame shape mismatch")
)

// FrameError identifies the offending position in a frame sequence.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
