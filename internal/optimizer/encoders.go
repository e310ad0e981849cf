package optimizer

import (
	"image"
	"image/jpeg"
	"io"

	"spinframe/internal/media"
)

// WebPEncoder encodes lossy WebP through libvips.
type WebPEncoder struct {
	// Effort is the libwebp reduction effort, 0 (fast) to 6 (smallest).
	Effort int
}

// NewWebPEncoder returns a WebP encoder with the given reduction effort.
func NewWebPEncoder(effort int) *WebPEncoder {
	return &WebPEncoder{Effort: effort}
}

func (e *WebPEncoder) Format() Format    { return FormatPrimary }
func (e *WebPEncoder) Extension() string { return FormatPrimary.Extension() }

func (e *WebPEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	data, err := media.ExportWebP(img, quality, e.Effort)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// JPEGEncoder encodes JPEG with optimized Huffman tables through libvips,
// or with image/jpeg when libvips has not been started.
type JPEGEncoder struct{}

// NewJPEGEncoder returns a JPEG encoder.
func NewJPEGEncoder() *JPEGEncoder {
	return &JPEGEncoder{}
}

func (e *JPEGEncoder) Format() Format    { return FormatFallback }
func (e *JPEGEncoder) Extension() string { return FormatFallback.Extension() }

func (e *JPEGEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	if !media.IsVipsAvailable() {
		return encodeStdlibJPEG(w, img, quality)
	}
	data, err := media.ExportJPEG(img, quality)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func encodeStdlibJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
