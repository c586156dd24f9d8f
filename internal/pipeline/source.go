package pipeline

import (
	"fmt"

	"rank-pooler/internal/logger"

	"gocv.io/x/gocv"
)

// VideoSource reads frames sequentially from a video file.
type VideoSource struct {
	capture *gocv.VideoCapture
	path    string
	read    int
	logger  logger.Logger
}

func OpenVideo(path string, log logger.Logger) (*VideoSource, error) {
	if log == nil {
		log = logger.NewNop()
	}

	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("failed to open video %s", path)
	}

	log.Info("VideoSource", "video opened", map[string]interface{}{
		"path":   path,
		"fps":    capture.Get(gocv.VideoCaptureFPS),
		"frames": int(capture.Get(gocv.VideoCaptureFrameCount)),
		"width":  int(capture.Get(gocv.VideoCaptureFrameWidth)),
		"height": int(capture.Get(gocv.VideoCaptureFrameHeight)),
	})

	return &VideoSource{capture: capture, path: path, logger: log}, nil
}

// Next returns the next decoded frame, or ErrEndOfStream once the capture
// yields nothing.
func (v *VideoSource) Next() (gocv.Mat, error) {
	frame := gocv.NewMat()
	if ok := v.capture.Read(&frame); !ok || frame.Empty() {
		frame.Close()
		v.logger.Debug("VideoSource", "end of stream", map[string]interface{}{
			"path":        v.path,
			"frames_read": v.read,
		})
		return gocv.Mat{}, ErrEndOfStream
	}

	v.read++
	return frame, nil
}

func (v *VideoSource) Close() error {
	return v.capture.Close()
}
