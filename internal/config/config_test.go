package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultSource, cfg.Source)
	assert.Equal(t, "py_rprgb_00000.jpg", cfg.Batch.OutputName)
	assert.Equal(t, 10, cfg.Stream.Window)
	assert.Equal(t, 'q', cfg.QuitRune())
	assert.True(t, cfg.Display.Enabled)
}

func TestParseShortAndLongFlags(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Parse("rankpool", []string{"-s", "in", "--dest", "out", "-w", "4", "--no-display"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "in", cfg.Source)
	assert.Equal(t, "out", cfg.Dest)
	assert.Equal(t, 4, cfg.Stream.Window)
	assert.False(t, cfg.Display.Enabled)
}

func TestParseRequiresDest(t *testing.T) {
	_, err := Parse("rankpool", []string{"-s", "in"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := Parse("rankpool", []string{"--help"}, &out)
	assert.ErrorIs(t, err, pflag.ErrHelp)
	assert.Contains(t, out.String(), "--source")
}

func TestFileThenFlagsPrecedence(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "rankpool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source: clips/walk.avi
dest: results
batch:
  pattern: "img*.jpg"
  jpeg_quality: 80
stream:
  window: 6
display:
  quit_key: x
log:
  format: json
`), 0o644))

	cfg, err := Parse("rankpool", []string{"-c", path, "-w", "3"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "clips/walk.avi", cfg.Source)
	assert.Equal(t, "results", cfg.Dest)
	assert.Equal(t, "img*.jpg", cfg.Batch.Pattern)
	assert.Equal(t, 80, cfg.Batch.JPEGQuality)
	assert.Equal(t, DefaultOutputName, cfg.Batch.OutputName)
	assert.Equal(t, 3, cfg.Stream.Window)
	assert.Equal(t, 'x', cfg.QuitRune())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stream: [1, 2"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"window":       func(c *Config) { c.Stream.Window = 0 },
		"max frames":   func(c *Config) { c.Stream.MaxFrames = -1 },
		"output name":  func(c *Config) { c.Batch.OutputName = "" },
		"jpeg quality": func(c *Config) { c.Batch.JPEGQuality = 101 },
		"quit key":     func(c *Config) { c.Display.QuitKey = "qq" },
		"source":       func(c *Config) { c.Source = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Dest = "out"
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	ok := Default()
	ok.Dest = "out"
	assert.NoError(t, ok.Validate())
}
