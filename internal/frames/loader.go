package frames

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"

	"spinframe/internal/logging"
	"spinframe/internal/media"
)

// ErrDuplicateStem marks a source whose name without extension was already
// used by an earlier source in the same run ("001.jpg" and "001.jpeg").
var ErrDuplicateStem = errors.New("output name already taken")

// LoadError reports a source file that could not be turned into a frame.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Options configures normalization.
type Options struct {
	Width      int
	Height     int
	Background color.Color
	// Decode overrides the image decoder. Defaults to media.OpenImage.
	Decode func(path string) (image.Image, error)
	// UniqueStems rejects a source whose Stem matches an earlier path, for
	// callers that name outputs after the stem.
	UniqueStems bool
}

// Loader yields normalized frames one at a time in path order. It is single
// pass: once exhausted, build a new Loader from a fresh Scan.
type Loader struct {
	paths []string
	next  int
	opts  Options
	// stems maps each stem to the first path that claimed it.
	stems map[string]string
}

// NewLoader creates a loader over paths.
func NewLoader(paths []string, opts Options) *Loader {
	if opts.Background == nil {
		opts.Background = White
	}
	if opts.Decode == nil {
		opts.Decode = media.OpenImage
	}
	l := &Loader{paths: paths, opts: opts}
	if opts.UniqueStems {
		l.stems = make(map[string]string, len(paths))
	}
	return l
}

// Len returns the number of paths the loader walks.
func (l *Loader) Len() int {
	return len(l.paths)
}

// Position returns the 1-based index of the path most recently returned by
// Next, or 0 before the first call.
func (l *Loader) Position() int {
	return l.next
}

// Next decodes and normalizes the next source. It returns io.EOF when every
// path has been consumed. A *LoadError means this one file failed; the
// loader has already advanced and the next call continues with the
// following file.
func (l *Loader) Next() (*Frame, error) {
	if l.next >= len(l.paths) {
		return nil, io.EOF
	}
	path := l.paths[l.next]
	l.next++

	if l.stems != nil {
		stem := Stem(path)
		if first, ok := l.stems[stem]; ok {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q is used by %s", ErrDuplicateStem, stem, filepath.Base(first))}
		}
		l.stems[stem] = path
	}

	img, err := l.opts.Decode(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if b := img.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy())}
	}

	canvas, placement := Normalize(img, l.opts.Width, l.opts.Height, l.opts.Background)
	if placement.Empty() {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("image %dx%d scales to nothing", img.Bounds().Dx(), img.Bounds().Dy())}
	}

	logging.Debug("Normalized %s: %dx%d placed at %v", filepath.Base(path),
		img.Bounds().Dx(), img.Bounds().Dy(), placement)

	return &Frame{
		Source:    filepath.Base(path),
		Path:      path,
		Image:     canvas,
		Placement: placement,
	}, nil
}
