package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSource     = "data/vid_src/#437_How_To_Ride_A_Bike_ride_bike_f_cm_np1_ba_med_0.avi"
	DefaultOutputName = "py_rprgb_00000.jpg"
)

// Config holds every tunable of a run
type Config struct {
	Source  string        `yaml:"source"`
	Dest    string        `yaml:"dest"`
	Batch   BatchConfig   `yaml:"batch"`
	Stream  StreamConfig  `yaml:"stream"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// BatchConfig controls image-directory mode
type BatchConfig struct {
	Pattern     string `yaml:"pattern"`      // glob applied to file names, e.g. img*.jpg
	OutputName  string `yaml:"output_name"`  // file name written inside Dest
	JPEGQuality int    `yaml:"jpeg_quality"` // 1..100
}

// StreamConfig controls video mode
type StreamConfig struct {
	Window    int `yaml:"window"`     // sliding window length in frames
	MaxFrames int `yaml:"max_frames"` // 0 = until end of stream
}

// DisplayConfig controls the preview window of video mode
type DisplayConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Title      string `yaml:"title"`
	KeyDelayMS int    `yaml:"key_delay_ms"`
	QuitKey    string `yaml:"quit_key"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

func Default() *Config {
	return &Config{
		Source: DefaultSource,
		Batch: BatchConfig{
			Pattern:     "*",
			OutputName:  DefaultOutputName,
			JPEGQuality: 95,
		},
		Stream: StreamConfig{
			Window: 10,
		},
		Display: DisplayConfig{
			Enabled:    true,
			Title:      "frame",
			KeyDelayMS: 5,
			QuitKey:    "q",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

var ErrInvalid = errors.New("invalid configuration")

// Validate checks the values that do not depend on the run mode.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: source is required", ErrInvalid)
	}
	if c.Dest == "" {
		return fmt.Errorf("%w: dest is required", ErrInvalid)
	}
	if c.Stream.Window < 1 {
		return fmt.Errorf("%w: stream.window must be >= 1, got %d", ErrInvalid, c.Stream.Window)
	}
	if c.Stream.MaxFrames < 0 {
		return fmt.Errorf("%w: stream.max_frames must be >= 0, got %d", ErrInvalid, c.Stream.MaxFrames)
	}
	if c.Batch.OutputName == "" {
		return fmt.Errorf("%w: batch.output_name is required", ErrInvalid)
	}
	if c.Batch.JPEGQuality < 1 || c.Batch.JPEGQuality > 100 {
		return fmt.Errorf("%w: batch.jpeg_quality must be in 1..100, got %d", ErrInvalid, c.Batch.JPEGQuality)
	}
	if utf8.RuneCountInString(c.Display.QuitKey) != 1 {
		return fmt.Errorf("%w: display.quit_key must be a single character, got %q", ErrInvalid, c.Display.QuitKey)
	}
	return nil
}

// QuitRune returns the configured quit key.
func (c *Config) QuitRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Display.QuitKey)
	return r
}
