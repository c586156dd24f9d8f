package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"rank-pooler/internal/config"
	"rank-pooler/internal/logger"
	"rank-pooler/internal/pipeline"
)

func TestDetectMode(t *testing.T) {
	dir := t.TempDir()
	mode, err := DetectMode(dir)
	require.NoError(t, err)
	assert.Equal(t, ModeBatch, mode)

	file := filepath.Join(dir, "clip.png")
	img := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC3)
	defer img.Close()
	require.True(t, gocv.IMWrite(file, img))

	mode, err = DetectMode(file)
	require.NoError(t, err)
	assert.Equal(t, ModeStream, mode)

	_, err = DetectMode(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRunBatchWritesDefaultOutputName(t *testing.T) {
	src := t.TempDir()
	for i, v := range []float64{10, 90, 30} {
		img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v/2, 255-v, 0), 4, 4, gocv.MatTypeCV8UC3)
		require.True(t, gocv.IMWrite(filepath.Join(src, []string{"a.png", "b.png", "c.png"}[i]), img))
		img.Close()
	}

	cfg := config.Default()
	cfg.Source = src
	cfg.Dest = t.TempDir()

	require.NoError(t, NewApplication(cfg, logger.NewNop()).Run(context.Background()))

	out := gocv.IMRead(filepath.Join(cfg.Dest, config.DefaultOutputName), gocv.IMReadColor)
	defer out.Close()
	assert.False(t, out.Empty())
	assert.Equal(t, 4, out.Rows())
}

func TestRunStreamFailsOnUndecodableVideo(t *testing.T) {
	src := filepath.Join(t.TempDir(), "clip.avi")
	require.NoError(t, os.WriteFile(src, []byte("not a video"), 0o644))

	cfg := config.Default()
	cfg.Source = src
	cfg.Dest = t.TempDir()
	cfg.Display.Enabled = false

	err := NewApplication(cfg, logger.NewNop()).Run(context.Background())
	assert.Error(t, err)
}

type countingDisplay struct {
	shown  int
	closed bool
}

func (d *countingDisplay) Show(gocv.Mat) bool { d.shown++; return false }
func (d *countingDisplay) Close() error       { d.closed = true; return nil }

func TestRunStreamPoolsEveryFrame(t *testing.T) {
	src := filepath.Join(t.TempDir(), "clip.avi")
	writer, err := gocv.VideoWriterFile(src, "MJPG", 10, 16, 16, true)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(40*i), 128, float64(255-40*i), 0), 16, 16, gocv.MatTypeCV8UC3)
		require.NoError(t, writer.Write(frame))
		frame.Close()
	}
	require.NoError(t, writer.Close())

	cfg := config.Default()
	cfg.Source = src
	cfg.Dest = t.TempDir()
	cfg.Stream.Window = 3

	display := &countingDisplay{}
	application := NewApplication(cfg, logger.NewNop())
	application.openDisplay = func(*config.Config) pipeline.Display { return display }

	require.NoError(t, application.Run(context.Background()))
	assert.Equal(t, 6, display.shown)
	assert.True(t, display.closed)
}
