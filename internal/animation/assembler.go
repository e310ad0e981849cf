package animation

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"time"

	"spinframe/internal/filesystem"
	"spinframe/internal/frames"
	"spinframe/internal/logging"
	"spinframe/internal/metrics"

	"github.com/andybons/gogif"
)

// ErrNoFrames is returned when there is nothing to assemble.
var ErrNoFrames = errors.New("no frames to assemble")

// Assembler writes animated GIFs.
type Assembler struct {
	// Delay is shown between frames. GIF stores it in 1/100 s.
	Delay time.Duration
	// LoopCount 0 loops forever.
	LoopCount int
	// Quality (1-100) sets the palette size per frame.
	Quality int
}

// Info describes a written animation.
type Info struct {
	Path   string
	Size   int64
	Width  int
	Height int
	// Frames is how many frames went into the file.
	Frames int
	// Available is how many source files were found before striding and
	// skipping failures. Zero when the caller does not know.
	Available int
	Delay     time.Duration
}

// ColorCount maps quality to a palette size between 2 and 256.
func ColorCount(quality int) int {
	n := 256 * quality / 100
	if n < 2 {
		return 2
	}
	if n > 256 {
		return 256
	}
	return n
}

// delayCentiseconds rounds d to GIF units, at least 1.
func delayCentiseconds(d time.Duration) int {
	cs := int((d + 5*time.Millisecond) / (10 * time.Millisecond))
	if cs < 1 {
		return 1
	}
	return cs
}

// Write encodes fs in order to path. The file is written under a temporary
// name in the same directory and renamed into place, so a failed run never
// leaves a truncated animation at path.
func (a *Assembler) Write(path string, fs []*frames.Frame) (Info, error) {
	if len(fs) == 0 {
		return Info{}, ErrNoFrames
	}

	bounds := fs[0].Image.Bounds()
	delay := delayCentiseconds(a.Delay)
	colors := ColorCount(a.Quality)

	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(fs)),
		Delay:     make([]int, 0, len(fs)),
		Disposal:  make([]byte, 0, len(fs)),
		LoopCount: a.LoopCount,
		Config: image.Config{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		},
	}

	for _, f := range fs {
		if f.Image.Bounds() != bounds {
			return Info{}, fmt.Errorf("frame %s is %v, expected %v", f.Source, f.Image.Bounds(), bounds)
		}
		anim.Image = append(anim.Image, quantize(f.Image, colors))
		anim.Delay = append(anim.Delay, delay)
		anim.Disposal = append(anim.Disposal, gif.DisposalNone)
	}

	if err := writeAtomic(path, anim); err != nil {
		return Info{}, err
	}

	size, err := filesystem.SizeWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return Info{}, fmt.Errorf("failed to stat animation: %w", err)
	}

	metrics.AnimationBytes.Set(float64(size))
	metrics.AnimationFrames.Set(float64(len(fs)))
	logging.Debug("Wrote %s: %d frames, %d colors, delay %dcs", filepath.Base(path), len(fs), colors, delay)

	return Info{
		Path:   path,
		Size:   size,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Frames: len(fs),
		Delay:  a.Delay,
	}, nil
}

// quantize reduces img to a median-cut palette of at most colors entries
// and dithers it onto that palette.
func quantize(img image.Image, colors int) *image.Paletted {
	b := img.Bounds()
	pm := image.NewPaletted(b, nil)
	q := &gogif.MedianCutQuantizer{NumColor: colors}
	q.Quantize(pm, b, img, b.Min)
	draw.FloydSteinberg.Draw(pm, b, img, b.Min)
	return pm
}

func writeAtomic(path string, anim *gif.GIF) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				logging.Warn("Failed to remove temp file %s: %v", tmpPath, rmErr)
			}
		}
	}()

	if err = gif.EncodeAll(tmp, anim); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode gif: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move animation into place: %w", err)
	}
	return nil
}
