package config

import (
	"errors"
	"fmt"
	"strings"

	"spinframe/internal/optimizer"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(c.Source.InputDir) == "" {
		add("source.input_dir must be set")
	}
	if strings.TrimSpace(c.Source.Extension) == "" {
		add("source.extension must be set")
	}

	t := c.Thumbnails
	if strings.TrimSpace(t.OutputDir) == "" {
		add("thumbnails.output_dir must be set")
	} else if sameDirectory(c.Source.InputDir, t.OutputDir) {
		add("thumbnails.output_dir must differ from source.input_dir, both resolve to %s", absPath(t.OutputDir))
	}
	if t.Width <= 0 || t.Height <= 0 {
		add("thumbnails canvas must be positive, got %dx%d", t.Width, t.Height)
	}
	if t.BudgetBytes <= 0 {
		add("thumbnails.budget_bytes must be positive, got %d", t.BudgetBytes)
	}
	if err := optimizer.Ladder(t.PrimaryLadder).Validate(); err != nil {
		add("thumbnails.primary_ladder: %v", err)
	}
	if t.PrimaryEffort < 0 || t.PrimaryEffort > 6 {
		add("thumbnails.primary_effort must be within 0..6, got %d", t.PrimaryEffort)
	}
	if t.FallbackStep <= 0 {
		add("thumbnails.fallback_step must be positive, got %d", t.FallbackStep)
	}
	if t.FallbackLow > t.FallbackHigh {
		add("thumbnails fallback range is inverted: %d > %d", t.FallbackLow, t.FallbackHigh)
	}
	if t.FallbackLow < 1 || t.FallbackHigh > 100 {
		add("thumbnails fallback range must be within 1..100, got %d..%d", t.FallbackLow, t.FallbackHigh)
	}

	a := c.Animation
	if strings.TrimSpace(a.Output) == "" {
		add("animation.output must be set")
	}
	if a.Width <= 0 || a.Height <= 0 {
		add("animation canvas must be positive, got %dx%d", a.Width, a.Height)
	}
	if a.FrameDurationMS <= 0 {
		add("animation.frame_duration_ms must be positive, got %d", a.FrameDurationMS)
	}
	if a.LoopCount < 0 {
		add("animation.loop_count must not be negative, got %d", a.LoopCount)
	}
	if a.Quality < 1 || a.Quality > 100 {
		add("animation.quality must be within 1..100, got %d", a.Quality)
	}
	if a.Skip < 0 {
		add("animation.skip must not be negative, got %d", a.Skip)
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration:\n  - " + strings.Join(problems, "\n  - "))
}

// WebPLadder returns the primary quality ladder.
func (t Thumbnails) WebPLadder() optimizer.Ladder {
	return optimizer.Ladder(t.PrimaryLadder)
}

// JPEGLadder returns the fallback quality ladder.
func (t Thumbnails) JPEGLadder() optimizer.Ladder {
	return optimizer.FallbackLadder(t.FallbackHigh, t.FallbackLow, t.FallbackStep)
}
