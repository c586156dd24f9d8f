package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rank-pooler/internal/logger"

	"gocv.io/x/gocv"
)

// DefaultJPEGQuality matches the encoder setting used for exported images.
const DefaultJPEGQuality = 95

var ErrUnsupportedFormat = errors.New("unsupported output format")

// FileSaver writes frames to disk as 8-bit images, choosing the codec from
// the file extension.
type FileSaver struct {
	jpegQuality   int
	logger        logger.Logger
	timingTracker TimingTracker
}

func NewFileSaver(jpegQuality int, log logger.Logger, tt TimingTracker) *FileSaver {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	if log == nil {
		log = logger.NewNop()
	}
	if tt == nil {
		tt = nopTracker{}
	}
	return &FileSaver{jpegQuality: jpegQuality, logger: log, timingTracker: tt}
}

func (s *FileSaver) SaveToPath(path string, frame gocv.Mat) error {
	ctx := s.timingTracker.StartTiming("save_to_path")
	defer s.timingTracker.EndTiming(ctx)

	if frame.Empty() {
		return fmt.Errorf("no image data to save")
	}

	format := determineFormat(filepath.Ext(path))
	if format == "" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out := ToDisplayable(frame)
	defer out.Close()

	s.logger.Debug("ImageSaver", "saving image", map[string]interface{}{
		"path":   path,
		"format": format,
		"width":  out.Cols(),
		"height": out.Rows(),
	})

	var ok bool
	switch format {
	case "jpeg":
		ok = gocv.IMWriteWithParams(path, out, []int{int(gocv.IMWriteJpegQuality), s.jpegQuality})
	default:
		ok = gocv.IMWrite(path, out)
	}

	if !ok {
		err := fmt.Errorf("failed to write %s", path)
		s.logger.Error("ImageSaver", err, map[string]interface{}{"format": format})
		return err
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":   path,
		"format": format,
	})
	return nil
}

// ToDisplayable converts a frame to 8-bit depth with rounding and saturation,
// keeping its channel count. The caller closes the result.
func ToDisplayable(frame gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	frame.ConvertTo(&out, gocv.MatTypeCV8U)
	return out
}
