package pipeline

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrEndOfStream is returned by a FrameSource once no further frames exist.
var ErrEndOfStream = errors.New("end of stream")

// FrameSource yields decoded frames one at a time. The caller owns every
// returned Mat.
type FrameSource interface {
	Next() (gocv.Mat, error)
	Close() error
}

// Display presents a rank-pooled frame. Show reports true when the viewer
// asked to stop.
type Display interface {
	Show(frame gocv.Mat) bool
	Close() error
}

// ImageLoader reads every frame of a batch, in processing order.
type ImageLoader interface {
	LoadDirectory(dir string) ([]gocv.Mat, error)
}

// ImageSaver persists a rank-pooled frame.
type ImageSaver interface {
	SaveToPath(path string, frame gocv.Mat) error
}
