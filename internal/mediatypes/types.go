package mediatypes

import (
	"path/filepath"
	"strings"
)

// ImageFormat identifies an image container/codec.
type ImageFormat string

const (
	// FormatJPEG is baseline or progressive JPEG.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is PNG.
	FormatPNG ImageFormat = "png"
	// FormatGIF is GIF, still or animated.
	FormatGIF ImageFormat = "gif"
	// FormatWebP is WebP, lossy or lossless.
	FormatWebP ImageFormat = "webp"
	// FormatBMP is Windows bitmap.
	FormatBMP ImageFormat = "bmp"
	// FormatTIFF is TIFF.
	FormatTIFF ImageFormat = "tiff"
	// FormatHEIF is HEIF/HEIC.
	FormatHEIF ImageFormat = "heif"
	// FormatAVIF is AVIF.
	FormatAVIF ImageFormat = "avif"
	// FormatJXL is JPEG XL.
	FormatJXL ImageFormat = "jxl"
	// FormatUnknown is returned when detection fails.
	FormatUnknown ImageFormat = "unknown"
)

// ImageExtensions maps lowercase file extensions to their image format.
var ImageExtensions = map[string]ImageFormat{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".gif":  FormatGIF,
	".webp": FormatWebP,
	".bmp":  FormatBMP,
	".tiff": FormatTIFF,
	".tif":  FormatTIFF,
	".heic": FormatHEIF,
	".heif": FormatHEIF,
	".avif": FormatAVIF,
	".jxl":  FormatJXL,
}

// NormalizeExt lowercases ext and ensures a leading dot ("JPG" -> ".jpg").
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// FormatForExt returns the image format for an extension, or FormatUnknown.
func FormatForExt(ext string) ImageFormat {
	if f, ok := ImageExtensions[NormalizeExt(ext)]; ok {
		return f
	}
	return FormatUnknown
}

// MatchesExt reports whether name has the wanted extension. Matching is
// case-insensitive and aliases of the same format match each other, so a
// wanted ".jpg" also selects "IMG_01.JPEG".
func MatchesExt(name, want string) bool {
	have := NormalizeExt(filepath.Ext(name))
	want = NormalizeExt(want)
	if have == "" || want == "" {
		return false
	}
	if have == want {
		return true
	}
	hf, wf := FormatForExt(have), FormatForExt(want)
	return hf != FormatUnknown && hf == wf
}

// DetectFormat sniffs the leading bytes of a file. At least 12 bytes are
// needed to tell the RIFF and ISO-BMFF based formats apart.
func DetectFormat(header []byte) ImageFormat {
	switch {
	case len(header) >= 3 && header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF:
		return FormatJPEG

	case len(header) >= 8 && header[0] == 0x89 && header[1] == 0x50 && header[2] == 0x4E && header[3] == 0x47:
		return FormatPNG

	case len(header) >= 4 && header[0] == 0x47 && header[1] == 0x49 && header[2] == 0x46 && header[3] == 0x38:
		return FormatGIF

	case len(header) >= 12 && header[0] == 0x52 && header[1] == 0x49 && header[2] == 0x46 && header[3] == 0x46 &&
		header[8] == 0x57 && header[9] == 0x45 && header[10] == 0x42 && header[11] == 0x50:
		return FormatWebP

	case len(header) >= 2 && header[0] == 0x42 && header[1] == 0x4D:
		return FormatBMP

	case len(header) >= 4 && ((header[0] == 0x49 && header[1] == 0x49 && header[2] == 0x2A && header[3] == 0x00) ||
		(header[0] == 0x4D && header[1] == 0x4D && header[2] == 0x00 && header[3] == 0x2A)):
		return FormatTIFF

	case len(header) >= 12 && header[4] == 0x66 && header[5] == 0x74 && header[6] == 0x79 && header[7] == 0x70:
		switch string(header[8:12]) {
		case "heic", "heix", "hevc", "hevx", "mif1", "msf1":
			return FormatHEIF
		case "avif", "avis":
			return FormatAVIF
		}
		return FormatUnknown

	case len(header) >= 2 && header[0] == 0xFF && header[1] == 0x0A:
		return FormatJXL

	case len(header) >= 8 && header[0] == 0x00 && header[1] == 0x00 && header[2] == 0x00 && header[3] == 0x0C &&
		header[4] == 0x4A && header[5] == 0x58 && header[6] == 0x4C && header[7] == 0x20:
		return FormatJXL
	}

	return FormatUnknown
}
