package optimizer

import (
	"errors"
	"fmt"
	"image"
	"io"
)

// ErrEncodeIO is wrapped by every error Optimize returns. The frame is
// skipped and no artifact is left behind for it.
var ErrEncodeIO = errors.New("encode failed")

// Format identifies which of the two candidate encodings was chosen.
type Format int

const (
	// FormatPrimary is lossy WebP.
	FormatPrimary Format = iota
	// FormatFallback is baseline JPEG.
	FormatFallback
)

// String returns the display name used in progress lines and summaries.
func (f Format) String() string {
	switch f {
	case FormatPrimary:
		return "WEBP"
	case FormatFallback:
		return "JPEG"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Label returns the lowercase name used as a metric label.
func (f Format) Label() string {
	switch f {
	case FormatPrimary:
		return "webp"
	case FormatFallback:
		return "jpeg"
	default:
		return "unknown"
	}
}

// Extension returns the output file extension including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatPrimary:
		return ".webp"
	case FormatFallback:
		return ".jpg"
	default:
		return ""
	}
}

// Formats lists every format in search order.
var Formats = []Format{FormatPrimary, FormatFallback}

// Encoder writes img at the given quality (1-100).
type Encoder interface {
	Format() Format
	Extension() string
	Encode(w io.Writer, img image.Image, quality int) error
}

// Ladder is a strictly decreasing list of qualities tried in order.
type Ladder []int

// Validate checks the ladder is non-empty, within 1..100 and strictly
// decreasing.
func (l Ladder) Validate() error {
	if len(l) == 0 {
		return errors.New("quality ladder is empty")
	}
	for i, q := range l {
		if q < 1 || q > 100 {
			return fmt.Errorf("quality %d out of range 1..100", q)
		}
		if i > 0 && q >= l[i-1] {
			return fmt.Errorf("quality ladder not strictly decreasing at %d -> %d", l[i-1], q)
		}
	}
	return nil
}

// FallbackLadder returns high, high-step, ... down to and including low when
// it lies on the step. It returns nil for a non-positive step or low > high.
func FallbackLadder(high, low, step int) Ladder {
	if step <= 0 || low > high {
		return nil
	}
	ladder := make(Ladder, 0, (high-low)/step+1)
	for q := high; q >= low; q -= step {
		ladder = append(ladder, q)
	}
	return ladder
}

// Budget is the maximum byte size of one output file.
type Budget int64

// Fits reports whether size is within the budget.
func (b Budget) Fits(size int64) bool {
	return size <= int64(b)
}

// Result records the encoding accepted for one frame.
type Result struct {
	// Source is the source filename the frame came from.
	Source  string
	Format  Format
	Size    int64
	Quality int
	// Path is the written output file.
	Path string
	// OverBudget is set when no candidate fit and the smallest was kept.
	OverBudget bool
}
