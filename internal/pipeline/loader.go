package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rank-pooler/internal/logger"

	"gocv.io/x/gocv"
)

// ErrNoImages is returned when a batch directory holds no usable image files.
var ErrNoImages = errors.New("no images found")

// DirectoryLoader decodes the image files of one directory in lexicographic
// filename order.
type DirectoryLoader struct {
	pattern       string
	logger        logger.Logger
	timingTracker TimingTracker
}

func NewDirectoryLoader(pattern string, log logger.Logger, tt TimingTracker) *DirectoryLoader {
	if pattern == "" {
		pattern = "*"
	}
	if log == nil {
		log = logger.NewNop()
	}
	if tt == nil {
		tt = nopTracker{}
	}
	return &DirectoryLoader{pattern: pattern, logger: log, timingTracker: tt}
}

// List returns the paths of the image files in dir matching the loader's
// pattern, sorted by filename.
func (l *DirectoryLoader) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		matched, err := filepath.Match(l.pattern, name)
		if err != nil {
			return nil, fmt.Errorf("invalid file pattern %q: %w", l.pattern, err)
		}
		if !matched {
			continue
		}

		if determineFormat(filepath.Ext(name)) == "" {
			l.logger.Debug("ImageLoader", "skipping non-image file", map[string]interface{}{
				"file": name,
			})
			continue
		}

		paths = append(paths, filepath.Join(dir, name))
	}

	return paths, nil
}

// LoadDirectory decodes every listed file as a color image. On error no Mat
// is left open.
func (l *DirectoryLoader) LoadDirectory(dir string) ([]gocv.Mat, error) {
	ctx := l.timingTracker.StartTiming("load_directory")
	defer l.timingTracker.EndTiming(ctx)

	paths, err := l.List(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s (pattern %q)", ErrNoImages, dir, l.pattern)
	}

	l.logger.Info("ImageLoader", "reading images", map[string]interface{}{
		"dir":   dir,
		"count": len(paths),
	})

	frames := make([]gocv.Mat, 0, len(paths))
	for _, path := range paths {
		mat := gocv.IMRead(path, gocv.IMReadColor)
		if mat.Empty() {
			mat.Close()
			closeAll(frames)
			return nil, fmt.Errorf("failed to decode image %s", path)
		}
		frames = append(frames, mat)
	}

	return frames, nil
}

func determineFormat(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".tiff", ".tif":
		return "tiff"
	case ".webp":
		return "webp"
	default:
		return ""
	}
}

func closeAll(frames []gocv.Mat) {
	for i := range frames {
		frames[i].Close()
	}
}
