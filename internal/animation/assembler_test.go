package animation

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"spinframe/internal/frames"
)

func makeFrames(t *testing.T, n, size int) []*frames.Frame {
	t.Helper()
	var out []*frames.Frame
	for i := 0; i < n; i++ {
		src := image.NewNRGBA(image.Rect(0, 0, size*2, size))
		for y := 0; y < size; y++ {
			for x := 0; x < size*2; x++ {
				src.Set(x, y, color.NRGBA{R: uint8(x + i*20), G: uint8(y * 2), B: uint8(i * 40), A: 255})
			}
		}
		canvas, placement := frames.Normalize(src, size, size, frames.White)
		out = append(out, &frames.Frame{Source: "frame.jpg", Image: canvas, Placement: placement})
	}
	return out
}

func TestColorCount(t *testing.T) {
	tests := []struct {
		quality int
		want    int
	}{
		{100, 256},
		{85, 217},
		{50, 128},
		{1, 2},
		{0, 2},
		{150, 256},
	}
	for _, tt := range tests {
		if got := ColorCount(tt.quality); got != tt.want {
			t.Errorf("ColorCount(%d) = %d, want %d", tt.quality, got, tt.want)
		}
	}
}

func TestDelayCentiseconds(t *testing.T) {
	tests := []struct {
		delay time.Duration
		want  int
	}{
		{50 * time.Millisecond, 5},
		{100 * time.Millisecond, 10},
		{44 * time.Millisecond, 4},
		{45 * time.Millisecond, 5},
		{time.Millisecond, 1},
	}
	for _, tt := range tests {
		if got := delayCentiseconds(tt.delay); got != tt.want {
			t.Errorf("delayCentiseconds(%v) = %d, want %d", tt.delay, got, tt.want)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "product-360.gif")
	a := &Assembler{Delay: 50 * time.Millisecond, LoopCount: 0, Quality: 85}

	info, err := a.Write(path, makeFrames(t, 4, 150))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if info.Frames != 4 || info.Width != 150 || info.Height != 150 {
		t.Errorf("Info = %+v", info)
	}
	if info.Size <= 0 || info.Path != path {
		t.Errorf("Info size/path = %d, %s", info.Size, info.Path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("gif.DecodeAll() error = %v", err)
	}
	if len(decoded.Image) != 4 {
		t.Errorf("Decoded %d frames, want 4", len(decoded.Image))
	}
	for i, d := range decoded.Delay {
		if d != 5 {
			t.Errorf("Frame %d delay = %d, want 5", i, d)
		}
	}
	if decoded.LoopCount != 0 {
		t.Errorf("LoopCount = %d, want 0", decoded.LoopCount)
	}
	for i, img := range decoded.Image {
		if len(img.Palette) > 217 {
			t.Errorf("Frame %d palette has %d colors, want at most 217", i, len(img.Palette))
		}
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Temp files left behind: %d entries", len(entries))
	}
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product-360.gif")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to write old file: %v", err)
	}

	a := &Assembler{Delay: 50 * time.Millisecond, Quality: 85}
	if _, err := a.Write(path, makeFrames(t, 2, 32)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data[:6]) != "GIF89a" {
		t.Errorf("File header = %q, want GIF89a", data[:6])
	}
}

func TestWriteNoFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product-360.gif")
	a := &Assembler{Delay: 50 * time.Millisecond, Quality: 85}

	if _, err := a.Write(path, nil); !errors.Is(err, ErrNoFrames) {
		t.Errorf("Write(nil) error = %v, want ErrNoFrames", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("No file should be written for zero frames")
	}
}

func TestWriteMismatchedFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product-360.gif")
	fs := append(makeFrames(t, 1, 32), makeFrames(t, 1, 48)...)

	a := &Assembler{Delay: 50 * time.Millisecond, Quality: 85}
	if _, err := a.Write(path, fs); err == nil {
		t.Error("Expected error for frames of different sizes")
	}
}

func TestWriteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "product-360.gif")
	a := &Assembler{Delay: 50 * time.Millisecond, Quality: 85}
	if _, err := a.Write(path, makeFrames(t, 1, 16)); err == nil {
		t.Error("Expected error writing into a missing directory")
	}
}
