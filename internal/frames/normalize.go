package frames

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// White is the default canvas background.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Frame is one normalized source image.
type Frame struct {
	// Source is the base filename the frame was decoded from.
	Source string
	// Path is the full source path.
	Path string
	// Image is the opaque canvas, exactly the configured size.
	Image *image.NRGBA
	// Placement is where the scaled photo sits on the canvas.
	Placement image.Rectangle
}

// BaseName returns Source without its extension.
func (f *Frame) BaseName() string {
	return Stem(f.Source)
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Normalize fits img inside a width x height canvas filled with bg. Any
// transparency is flattened onto bg first, so the result is fully opaque. The
// photo is downscaled with Lanczos when it is larger than the canvas (never
// upscaled) and pasted at the floor-centered offset.
func Normalize(img image.Image, width, height int, bg color.Color) (*image.NRGBA, image.Rectangle) {
	opaque := flatten(img, bg)
	scaled := imaging.Fit(opaque, width, height, imaging.Lanczos)

	sw, sh := scaled.Bounds().Dx(), scaled.Bounds().Dy()
	offset := image.Pt((width-sw)/2, (height-sh)/2)

	canvas := imaging.New(width, height, bg)
	canvas = imaging.Paste(canvas, scaled, offset)

	return canvas, image.Rectangle{Min: offset, Max: offset.Add(image.Pt(sw, sh))}
}

// flatten composites img over a solid bg when it has any transparency.
func flatten(img image.Image, bg color.Color) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	base := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(base, img, image.Pt(0, 0), 1.0)
}
