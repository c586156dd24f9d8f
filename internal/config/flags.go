package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// Parse builds the run configuration from defaults, an optional YAML file
// (--config), the LOG_LEVEL environment variable and finally the command
// line flags, in that order of precedence. It returns pflag.ErrHelp when
// help was requested.
func Parse(name string, args []string, stderr io.Writer) (*Config, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Approximate rank pooling over a video or an image directory.\n\nUsage: %s [flags]\n\n", name)
		fs.PrintDefaults()
	}

	def := Default()
	configPath := fs.StringP("config", "c", "", "YAML configuration file")
	source := fs.StringP("source", "s", def.Source, "video file or images folder path")
	dest := fs.StringP("dest", "d", "", "folder/dir to save output")
	windowSize := fs.IntP("window", "w", def.Stream.Window, "sliding window length in video mode")
	pattern := fs.StringP("pattern", "p", def.Batch.Pattern, "file name glob for image folders")
	outputName := fs.StringP("output-name", "o", def.Batch.OutputName, "output file name inside --dest")
	maxFrames := fs.Int("max-frames", def.Stream.MaxFrames, "stop video mode after this many frames (0 = no limit)")
	noDisplay := fs.Bool("no-display", false, "do not open a preview window in video mode")
	logLevel := fs.String("log-level", def.Log.Level, "log level: debug, info, warn, error")
	logFormat := fs.String("log-format", def.Log.Format, "log format: console, json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := def
	if *configPath != "" {
		loaded, err := Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if env := os.Getenv("LOG_LEVEL"); env != "" && !fs.Changed("log-level") {
		cfg.Log.Level = env
	}

	if fs.Changed("source") {
		cfg.Source = *source
	}
	if fs.Changed("dest") {
		cfg.Dest = *dest
	}
	if fs.Changed("window") {
		cfg.Stream.Window = *windowSize
	}
	if fs.Changed("pattern") {
		cfg.Batch.Pattern = *pattern
	}
	if fs.Changed("output-name") {
		cfg.Batch.OutputName = *outputName
	}
	if fs.Changed("max-frames") {
		cfg.Stream.MaxFrames = *maxFrames
	}
	if fs.Changed("no-display") {
		cfg.Display.Enabled = !*noDisplay
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = *logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
