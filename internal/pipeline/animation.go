package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"spinframe/internal/animation"
	"spinframe/internal/config"
	"spinframe/internal/frames"
	"spinframe/internal/logging"
	"spinframe/internal/metrics"
	"spinframe/internal/report"
)

const animationLabel = "animation"

// Animation loads every (skip+1)-th source image and writes them as one
// looping GIF.
func Animation(ctx context.Context, cfg *config.Config, console *report.Console) (animation.Info, error) {
	start := time.Now()
	a := cfg.Animation

	console.Section("Animation")

	paths, err := frames.Scan(cfg.Source.InputDir, cfg.Source.Extension)
	if err != nil {
		if errors.Is(err, frames.ErrNoSources) {
			console.Notice("No source images found in %s", cfg.Source.InputDir)
			return animation.Info{}, fmt.Errorf("%w: %v", ErrMissingInput, err)
		}
		return animation.Info{}, err
	}

	selected := frames.Stride(paths, a.Skip)
	console.Notice("Processing %d of %d images", len(selected), len(paths))

	lock, err := AcquireLock(a.Output)
	if err != nil {
		return animation.Info{Available: len(paths)}, err
	}
	defer releaseLock(lock)

	loader := frames.NewLoader(selected, frames.Options{Width: a.Width, Height: a.Height})
	n := loader.Len()
	var loaded []*frames.Frame

	for {
		if err := ctx.Err(); err != nil {
			logging.Warn("Animation run interrupted after %d of %d images", loader.Position(), n)
			return animation.Info{Available: len(paths)}, err
		}

		frame, err := loader.Next()
		if err == io.EOF {
			break
		}
		i := loader.Position()
		if err != nil {
			logging.Warn("Skipping source: %v", err)
			metrics.FramesFailedTotal.WithLabelValues(animationLabel, "load").Inc()
			console.Skipped(i, n, filepath.Base(selected[i-1]), err)
			continue
		}
		metrics.FramesLoadedTotal.WithLabelValues(animationLabel).Inc()
		console.Loaded(i, n, frame.Source)
		loaded = append(loaded, frame)
	}

	if len(loaded) == 0 {
		console.Notice("No frame could be loaded; %s not written", a.Output)
		finish(cfg, animationLabel, start)
		return animation.Info{Available: len(paths)}, ErrNoFrames
	}

	if err := config.EnsureDirectory(filepath.Dir(a.Output), "animation"); err != nil {
		return animation.Info{Available: len(paths)}, err
	}

	assembler := &animation.Assembler{
		Delay:     a.FrameDuration(),
		LoopCount: a.LoopCount,
		Quality:   a.Quality,
	}
	info, err := assembler.Write(a.Output, loaded)
	info.Available = len(paths)
	if err != nil {
		return info, fmt.Errorf("failed to write animation: %w", err)
	}

	console.RenderAnimation(info)
	finish(cfg, animationLabel, start)
	return info, nil
}
