package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Source selects the input frames shared by both pipelines.
type Source struct {
	InputDir  string `toml:"input_dir"`
	Extension string `toml:"extension"`
}

// Thumbnails configures the budgeted still pipeline.
type Thumbnails struct {
	OutputDir   string `toml:"output_dir"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	BudgetBytes int64  `toml:"budget_bytes"`
	// PrimaryLadder is the WebP quality ladder, strictly decreasing.
	PrimaryLadder []int `toml:"primary_ladder"`
	// PrimaryEffort is the libwebp reduction effort (0-6).
	PrimaryEffort int `toml:"primary_effort"`
	// FallbackHigh, FallbackLow and FallbackStep describe the JPEG ladder.
	FallbackHigh int `toml:"fallback_high"`
	FallbackLow  int `toml:"fallback_low"`
	FallbackStep int `toml:"fallback_step"`
}

// Animation configures the looping GIF pipeline.
type Animation struct {
	Output          string `toml:"output"`
	Width           int    `toml:"width"`
	Height          int    `toml:"height"`
	FrameDurationMS int    `toml:"frame_duration_ms"`
	// LoopCount 0 loops forever.
	LoopCount int `toml:"loop_count"`
	Quality   int `toml:"quality"`
	// Skip drops that many files between frames used; 0 uses every file.
	Skip int `toml:"skip"`
}

// Config is the complete run configuration.
type Config struct {
	Source     Source     `toml:"source"`
	Thumbnails Thumbnails `toml:"thumbnails"`
	Animation  Animation  `toml:"animation"`
	// MetricsFile, when set, receives Prometheus textfile output after a run.
	MetricsFile string `toml:"metrics_file"`
}

// FrameDuration returns the animation frame delay.
func (a Animation) FrameDuration() time.Duration {
	return time.Duration(a.FrameDurationMS) * time.Millisecond
}

// LockPath returns the lock file guarding a run against path. It sits next
// to the target rather than inside it so output directories hold only
// artifacts.
func LockPath(target string) string {
	return target + ".lock"
}

// Load returns Default overlaid with the TOML file at path and then the
// environment. An empty path skips the file; a path that does not exist is
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path over the current values. Keys
// absent from the file keep their current value.
func (c *Config) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s does not exist", path)
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse config %s: %s", path, strict.String())
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
