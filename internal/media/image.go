package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os/exec"

	"spinframe/internal/filesystem"
	"spinframe/internal/logging"
	"spinframe/internal/mediatypes"
	"spinframe/internal/metrics"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP format support
)

const (
	// MaxImageDimension is the maximum width or height we'll process.
	// Larger sources are downscaled right after decode.
	MaxImageDimension = 4096

	// MaxImagePixels is the maximum total pixels (width * height) we'll process
	MaxImagePixels = 20_000_000 // ~20MP, uses ~80MB in NRGBA
)

// ErrUndecodable is wrapped by OpenImage when every decoder failed.
var ErrUndecodable = errors.New("no decoder could read image")

// OpenImage decodes the image at path, trying in order:
//  1. imaging.Open with EXIF auto-orientation
//  2. the stdlib image.Decode registry (jpeg, png, gif, webp)
//  3. libvips, for formats Go cannot decode (HEIF, AVIF, TIFF, JXL)
//  4. ffmpeg, if it is on PATH
//
// The result is constrained to MaxImageDimension/MaxImagePixels.
func OpenImage(path string) (image.Image, error) {
	format := sniffFormat(path)

	img, err := LoadImageConstrained(path, MaxImageDimension, MaxImagePixels)
	if err == nil {
		metrics.DecodeByFormat.WithLabelValues(string(format), "imaging").Inc()
		return img, nil
	}
	logging.Debug("imaging.Open failed for %s (%s): %v, trying fallback methods", path, format, err)

	img, err = decodeImageFile(path)
	if err == nil {
		metrics.DecodeByFormat.WithLabelValues(string(format), "stdlib").Inc()
		return constrain(img, MaxImageDimension, MaxImagePixels), nil
	}
	logging.Debug("Standard decode failed for %s: %v", path, err)

	if IsVipsAvailable() {
		img, err = LoadImageWithVips(path, MaxImageDimension)
		if err == nil {
			metrics.DecodeByFormat.WithLabelValues(string(format), "vips").Inc()
			return img, nil
		}
		logging.Debug("vips decode failed for %s: %v", path, err)
	}

	img, err = decodeWithFFmpeg(path)
	if err == nil {
		metrics.DecodeByFormat.WithLabelValues(string(format), "ffmpeg").Inc()
		return constrain(img, MaxImageDimension, MaxImagePixels), nil
	}

	return nil, fmt.Errorf("%w: %s (%s): %v", ErrUndecodable, path, format, err)
}

// LoadImageConstrained loads an image, downscaling if it exceeds size limits
func LoadImageConstrained(path string, maxDimension, maxPixels int) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	return constrain(img, maxDimension, maxPixels), nil
}

// constrainedSize returns the dimensions an image of w x h is scaled to so it
// fits maxDimension on both edges and maxPixels in area. ok is false when no
// scaling is needed.
func constrainedSize(w, h, maxDimension, maxPixels int) (tw, th int, ok bool) {
	if w <= maxDimension && h <= maxDimension && w*h <= maxPixels {
		return w, h, false
	}

	tw, th = w, h
	if w > maxDimension || h > maxDimension {
		if w > h {
			tw = maxDimension
			th = h * maxDimension / w
		} else {
			th = maxDimension
			tw = w * maxDimension / h
		}
	}

	if tw*th > maxPixels {
		scale := float64(maxPixels) / float64(tw*th)
		// area scales with the square of the edge factor
		edge := math.Sqrt(scale)
		tw = int(float64(tw) * edge)
		th = int(float64(th) * edge)
	}

	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	return tw, th, true
}

func constrain(img image.Image, maxDimension, maxPixels int) image.Image {
	b := img.Bounds()
	tw, th, ok := constrainedSize(b.Dx(), b.Dy(), maxDimension, maxPixels)
	if !ok {
		return img
	}
	logging.Info("Constraining large image from %dx%d to %dx%d", b.Dx(), b.Dy(), tw, th)
	return imaging.Resize(img, tw, th, imaging.Lanczos)
}

func decodeImageFile(path string) (image.Image, error) {
	file, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, err
	}

	logging.Debug("Decoded image format: %s for %s", format, path)
	return img, nil
}

// sniffFormat reads the magic bytes of path for log and metric labels.
func sniffFormat(path string) mediatypes.ImageFormat {
	file, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return mediatypes.FormatUnknown
	}
	defer file.Close()

	header := make([]byte, 32)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return mediatypes.FormatUnknown
	}
	return mediatypes.DetectFormat(header[:n])
}

func decodeWithFFmpeg(path string) (image.Image, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}
	logging.Debug("Using ffmpeg (%s) to decode image: %s", ffmpegPath, path)

	cmd := exec.Command(ffmpegPath,
		"-v", "error",
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-pix_fmt", "rgb24",
		"-",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %v, stderr: %s", err, stderr.String())
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output for %s", path)
	}

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ffmpeg output: %w", err)
	}
	return img, nil
}
