package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"spinframe/internal/config"
	"spinframe/internal/frames"
	"spinframe/internal/logging"
	"spinframe/internal/metrics"
	"spinframe/internal/optimizer"
	"spinframe/internal/report"
)

const thumbnailsLabel = "thumbnails"

// Thumbnails writes one budgeted still per source image into the output
// directory and returns the run summary. The summary is returned even when
// the run stops early.
func Thumbnails(ctx context.Context, cfg *config.Config, console *report.Console) (report.Summary, error) {
	start := time.Now()
	t := cfg.Thumbnails
	budget := optimizer.Budget(t.BudgetBytes)

	console.Section("Thumbnails")

	paths, err := frames.Scan(cfg.Source.InputDir, cfg.Source.Extension)
	if err != nil {
		if errors.Is(err, frames.ErrNoSources) {
			console.Notice("No source images found in %s", cfg.Source.InputDir)
			return report.NewSummary(budget, 0), fmt.Errorf("%w: %v", ErrMissingInput, err)
		}
		return report.NewSummary(budget, 0), err
	}

	lock, err := AcquireLock(t.OutputDir)
	if err != nil {
		return report.NewSummary(budget, len(paths)), err
	}
	defer releaseLock(lock)

	if err := config.EnsureDirectory(t.OutputDir, "output"); err != nil {
		return report.NewSummary(budget, len(paths)), err
	}

	opt := optimizer.New(budget,
		optimizer.Stage{Encoder: optimizer.NewWebPEncoder(t.PrimaryEffort), Ladder: t.WebPLadder()},
		optimizer.Stage{Encoder: optimizer.NewJPEGEncoder(), Ladder: t.JPEGLadder()},
	)
	loader := frames.NewLoader(paths, frames.Options{Width: t.Width, Height: t.Height, UniqueStems: true})

	console.Notice("Optimizing %d images to %dx%d under %d bytes", len(paths), t.Width, t.Height, t.BudgetBytes)
	summary := report.NewSummary(budget, len(paths))
	n := loader.Len()

	for {
		if err := ctx.Err(); err != nil {
			logging.Warn("Thumbnail run interrupted after %d of %d images", loader.Position(), n)
			return summary, err
		}

		frame, err := loader.Next()
		if err == io.EOF {
			break
		}
		i := loader.Position()
		if err != nil {
			logging.Warn("Skipping source: %v", err)
			metrics.FramesFailedTotal.WithLabelValues(thumbnailsLabel, "load").Inc()
			console.Skipped(i, n, filepath.Base(paths[i-1]), err)
			summary = summary.Skip()
			continue
		}
		metrics.FramesLoadedTotal.WithLabelValues(thumbnailsLabel).Inc()

		result, err := opt.Optimize(frame, t.OutputDir, frame.BaseName())
		if err != nil {
			logging.Warn("Skipping %s: %v", frame.Source, err)
			metrics.FramesFailedTotal.WithLabelValues(thumbnailsLabel, "encode").Inc()
			console.Skipped(i, n, frame.Source, err)
			summary = summary.Skip()
			continue
		}

		console.Progress(i, n, result)
		summary = summary.Add(result)
	}

	console.RenderSummary(summary)
	finish(cfg, thumbnailsLabel, start)
	return summary, nil
}
