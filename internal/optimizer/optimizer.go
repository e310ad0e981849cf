package optimizer

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"spinframe/internal/filesystem"
	"spinframe/internal/frames"
	"spinframe/internal/logging"
	"spinframe/internal/metrics"
)

// Stage pairs an encoder with the qualities tried for it.
type Stage struct {
	Encoder Encoder
	Ladder  Ladder
}

// Optimizer runs the two-stage budget search for one frame at a time. It
// holds no per-frame state and may be reused across frames.
type Optimizer struct {
	Budget   Budget
	Primary  Stage
	Fallback Stage
	Retry    filesystem.RetryConfig
}

// New creates an optimizer with the default filesystem retry settings.
func New(budget Budget, primary, fallback Stage) *Optimizer {
	return &Optimizer{
		Budget:   budget,
		Primary:  primary,
		Fallback: fallback,
		Retry:    filesystem.DefaultRetryConfig(),
	}
}

// candidate is one measured trial.
type candidate struct {
	stage   int
	quality int
	size    int64
}

// Optimize encodes frame into outDir as baseName plus the extension of the
// accepted format.
//
// The primary ladder is tried first and the first size within the budget
// wins. Only if none fits is the fallback ladder tried, again first fit. If
// both are exhausted, the smallest size seen in either stage is kept, with
// ties going to the earlier trial, and the result is flagged OverBudget.
// The file of the other format is removed so one artifact remains.
func (o *Optimizer) Optimize(frame *frames.Frame, outDir, baseName string) (Result, error) {
	stages := []Stage{o.Primary, o.Fallback}
	paths := make([]string, len(stages))
	for i, st := range stages {
		paths[i] = filepath.Join(outDir, baseName+st.Encoder.Extension())
	}

	// quality last written to each path, 0 when untouched
	written := make([]int, len(stages))
	var best *candidate

	for i, st := range stages {
		for _, q := range st.Ladder {
			size, err := o.trial(st.Encoder, frame.Image, paths[i], q)
			if err != nil {
				o.discard(paths)
				return Result{}, fmt.Errorf("%w: %s %s at Q=%d: %v",
					ErrEncodeIO, frame.Source, st.Encoder.Format(), q, err)
			}
			written[i] = q

			if o.Budget.Fits(size) {
				logging.Debug("%s: %s Q=%d fits (%d <= %d bytes)", frame.Source, st.Encoder.Format(), q, size, o.Budget)
				return o.accept(frame, stages, paths, candidate{stage: i, quality: q, size: size}, false)
			}

			if best == nil || size < best.size {
				best = &candidate{stage: i, quality: q, size: size}
			}
		}
		if i == 0 && len(stages) > 1 {
			logging.Debug("%s: no %s quality fits %d bytes, trying %s", frame.Source,
				st.Encoder.Format(), o.Budget, stages[1].Encoder.Format())
		}
	}

	if best == nil {
		o.discard(paths)
		return Result{}, fmt.Errorf("%w: %s: no qualities to try", ErrEncodeIO, frame.Source)
	}

	if written[best.stage] != best.quality {
		st := stages[best.stage]
		size, err := o.trial(st.Encoder, frame.Image, paths[best.stage], best.quality)
		if err != nil {
			o.discard(paths)
			return Result{}, fmt.Errorf("%w: %s re-encoding %s at Q=%d: %v",
				ErrEncodeIO, frame.Source, st.Encoder.Format(), best.quality, err)
		}
		best.size = size
	}

	logging.Debug("%s: budget unsatisfiable, keeping smallest %s Q=%d (%d bytes)",
		frame.Source, stages[best.stage].Encoder.Format(), best.quality, best.size)
	return o.accept(frame, stages, paths, *best, true)
}

// accept removes every path except the chosen one and builds the result.
func (o *Optimizer) accept(frame *frames.Frame, stages []Stage, paths []string, c candidate, overBudget bool) (Result, error) {
	for i, p := range paths {
		if i == c.stage {
			continue
		}
		removed, err := filesystem.RemoveIfExists(p, o.Retry)
		if err != nil {
			o.discard(paths)
			return Result{}, fmt.Errorf("%w: removing stale %s: %v", ErrEncodeIO, filepath.Base(p), err)
		}
		if removed {
			logging.Debug("Removed abandoned %s", filepath.Base(p))
		}
	}

	format := stages[c.stage].Encoder.Format()
	metrics.ObserveResult(format.Label(), c.size, overBudget)

	return Result{
		Source:     frame.Source,
		Format:     format,
		Size:       c.size,
		Quality:    c.quality,
		Path:       paths[c.stage],
		OverBudget: overBudget,
	}, nil
}

// trial writes one encoding to path and returns its size on disk.
func (o *Optimizer) trial(enc Encoder, img image.Image, path string, quality int) (int64, error) {
	start := time.Now()
	label := enc.Format().Label()

	if err := writeEncoded(enc, img, path, quality); err != nil {
		metrics.ObserveEncode(label, "error", time.Since(start).Seconds())
		return 0, err
	}

	size, err := filesystem.SizeWithRetry(path, o.Retry)
	if err != nil {
		metrics.ObserveEncode(label, "error", time.Since(start).Seconds())
		return 0, err
	}

	outcome := "over"
	if o.Budget.Fits(size) {
		outcome = "fit"
	}
	metrics.ObserveEncode(label, outcome, time.Since(start).Seconds())
	logging.Debug("Trial %s %s Q=%d: %d bytes", filepath.Base(path), enc.Format(), quality, size)
	return size, nil
}

func writeEncoded(enc Encoder, img image.Image, path string, quality int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return enc.Encode(f, img, quality)
}

// discard removes every candidate path after a failure.
func (o *Optimizer) discard(paths []string) {
	for _, p := range paths {
		if _, err := filesystem.RemoveIfExists(p, o.Retry); err != nil {
			logging.Warn("Failed to clean up %s: %v", p, err)
		}
	}
}
