package optimizer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"spinframe/internal/frames"
)

// fakeEncoder writes sizes[quality] bytes so tests control every trial size.
type fakeEncoder struct {
	format Format
	sizes  map[int]int
	failAt int
	calls  []int
}

func (e *fakeEncoder) Format() Format    { return e.format }
func (e *fakeEncoder) Extension() string { return e.format.Extension() }

func (e *fakeEncoder) Encode(w io.Writer, _ image.Image, quality int) error {
	e.calls = append(e.calls, quality)
	if quality == e.failAt {
		return errors.New("encoder exploded")
	}
	n, ok := e.sizes[quality]
	if !ok {
		n = 100000
	}
	_, err := w.Write(bytes.Repeat([]byte{byte(quality)}, n))
	return err
}

var (
	testPrimaryLadder  = Ladder{95, 90, 85, 80, 75, 70}
	testFallbackLadder = FallbackLadder(50, 10, 5)
)

func testFrame() *frames.Frame {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return &frames.Frame{Source: "001.jpg", Image: img}
}

func newFakeOptimizer(budget Budget, webp, jpg map[int]int) (*Optimizer, *fakeEncoder, *fakeEncoder) {
	primary := &fakeEncoder{format: FormatPrimary, sizes: webp}
	fallback := &fakeEncoder{format: FormatFallback, sizes: jpg}
	opt := New(budget,
		Stage{Encoder: primary, Ladder: testPrimaryLadder},
		Stage{Encoder: fallback, Ladder: testFallbackLadder},
	)
	return opt, primary, fallback
}

func descending(start, step int, qualities ...int) map[int]int {
	sizes := make(map[int]int, len(qualities))
	for i, q := range qualities {
		sizes[q] = start - i*step
	}
	return sizes
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat(%s) error = %v", path, err)
	}
	return info.Size()
}

func assertOnlyFile(t *testing.T, dir, want string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 1 || names[0] != want {
		t.Errorf("Output directory holds %v, want only %s", names, want)
	}
}

func TestFallbackLadder(t *testing.T) {
	tests := []struct {
		high, low, step int
		want            Ladder
	}{
		{50, 10, 5, Ladder{50, 45, 40, 35, 30, 25, 20, 15, 10}},
		{50, 12, 5, Ladder{50, 45, 40, 35, 30, 25, 20, 15}},
		{30, 30, 5, Ladder{30}},
		{10, 50, 5, nil},
		{50, 10, 0, nil},
	}

	for _, tt := range tests {
		got := FallbackLadder(tt.high, tt.low, tt.step)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FallbackLadder(%d, %d, %d) = %v, want %v", tt.high, tt.low, tt.step, got, tt.want)
		}
	}
}

func TestLadderValidate(t *testing.T) {
	tests := []struct {
		name    string
		ladder  Ladder
		wantErr bool
	}{
		{"default primary", testPrimaryLadder, false},
		{"default fallback", testFallbackLadder, false},
		{"single", Ladder{80}, false},
		{"empty", Ladder{}, true},
		{"increasing", Ladder{70, 80}, true},
		{"repeated", Ladder{90, 90}, true},
		{"zero", Ladder{50, 0}, true},
		{"above 100", Ladder{101, 90}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.ladder.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatNames(t *testing.T) {
	if FormatPrimary.String() != "WEBP" || FormatFallback.String() != "JPEG" {
		t.Errorf("String() = %s/%s", FormatPrimary, FormatFallback)
	}
	if FormatPrimary.Extension() != ".webp" || FormatFallback.Extension() != ".jpg" {
		t.Errorf("Extension() = %s/%s", FormatPrimary.Extension(), FormatFallback.Extension())
	}
	if FormatPrimary.Label() != "webp" || FormatFallback.Label() != "jpeg" {
		t.Errorf("Label() = %s/%s", FormatPrimary.Label(), FormatFallback.Label())
	}
}

func TestOptimizeStopsAtFirstFit(t *testing.T) {
	tests := []struct {
		name        string
		webp        map[int]int
		wantQuality int
		wantCalls   []int
	}{
		{
			name:        "highest quality fits",
			webp:        map[int]int{95: 15000, 90: 12000},
			wantQuality: 95,
			wantCalls:   []int{95},
		},
		{
			name:        "third rung fits",
			webp:        descending(30000, 5000, 95, 90, 85, 80, 75, 70),
			wantQuality: 85,
			wantCalls:   []int{95, 90, 85},
		},
		{
			name:        "greedy does not look for a smaller fit further down",
			webp:        map[int]int{95: 30000, 90: 20000, 85: 5000},
			wantQuality: 90,
			wantCalls:   []int{95, 90},
		},
		{
			name:        "exactly on budget fits",
			webp:        map[int]int{95: 20481, 90: 20480},
			wantQuality: 90,
			wantCalls:   []int{95, 90},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			opt, primary, fallback := newFakeOptimizer(20480, tt.webp, nil)

			result, err := opt.Optimize(testFrame(), dir, "001")
			if err != nil {
				t.Fatalf("Optimize() error = %v", err)
			}

			if result.Format != FormatPrimary || result.Quality != tt.wantQuality {
				t.Errorf("Result = %s Q=%d, want WEBP Q=%d", result.Format, result.Quality, tt.wantQuality)
			}
			if result.OverBudget {
				t.Error("Result should be within budget")
			}
			if int(result.Size) != tt.webp[tt.wantQuality] {
				t.Errorf("Size = %d, want %d", result.Size, tt.webp[tt.wantQuality])
			}
			if !reflect.DeepEqual(primary.calls, tt.wantCalls) {
				t.Errorf("Primary calls = %v, want %v", primary.calls, tt.wantCalls)
			}
			if len(fallback.calls) != 0 {
				t.Errorf("Fallback should not run, got calls %v", fallback.calls)
			}
			if result.Source != "001.jpg" || result.Path != filepath.Join(dir, "001.webp") {
				t.Errorf("Result source/path = %s, %s", result.Source, result.Path)
			}
			assertOnlyFile(t, dir, "001.webp")
		})
	}
}

func TestOptimizeFallsBack(t *testing.T) {
	dir := t.TempDir()
	webp := descending(40000, 2000, 95, 90, 85, 80, 75, 70)
	jpg := descending(26000, 2000, 50, 45, 40, 35, 30, 25, 20, 15, 10)
	opt, primary, fallback := newFakeOptimizer(20480, webp, jpg)

	result, err := opt.Optimize(testFrame(), dir, "001")
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	if result.Format != FormatFallback || result.Quality != 35 {
		t.Errorf("Result = %s Q=%d, want JPEG Q=35", result.Format, result.Quality)
	}
	if result.OverBudget || result.Size != 20000 {
		t.Errorf("Result size=%d overBudget=%v, want 20000 within budget", result.Size, result.OverBudget)
	}
	if len(primary.calls) != len(testPrimaryLadder) {
		t.Errorf("Primary should try every rung, got %v", primary.calls)
	}
	if !reflect.DeepEqual(fallback.calls, []int{50, 45, 40, 35}) {
		t.Errorf("Fallback calls = %v", fallback.calls)
	}
	assertOnlyFile(t, dir, "001.jpg")
	if got := fileSize(t, result.Path); got != result.Size {
		t.Errorf("File size %d does not match result %d", got, result.Size)
	}
}

func TestOptimizeBudgetUnsatisfiable(t *testing.T) {
	tests := []struct {
		name        string
		webp        map[int]int
		jpg         map[int]int
		wantFormat  Format
		wantQuality int
		wantSize    int64
		wantFile    string
		reencode    bool
	}{
		{
			name:        "fallback smallest",
			webp:        descending(40000, 2000, 95, 90, 85, 80, 75, 70),
			jpg:         descending(29000, 500, 50, 45, 40, 35, 30, 25, 20, 15, 10),
			wantFormat:  FormatFallback,
			wantQuality: 10,
			wantSize:    25000,
			wantFile:    "001.jpg",
		},
		{
			name:        "primary last rung smallest",
			webp:        descending(40000, 2000, 95, 90, 85, 80, 75, 70),
			jpg:         descending(40000, 500, 50, 45, 40, 35, 30, 25, 20, 15, 10),
			wantFormat:  FormatPrimary,
			wantQuality: 70,
			wantSize:    30000,
			wantFile:    "001.webp",
		},
		{
			name:        "primary middle rung smallest is re-encoded",
			webp:        map[int]int{95: 40000, 90: 22000, 85: 30000, 80: 31000, 75: 32000, 70: 33000},
			jpg:         descending(40000, 500, 50, 45, 40, 35, 30, 25, 20, 15, 10),
			wantFormat:  FormatPrimary,
			wantQuality: 90,
			wantSize:    22000,
			wantFile:    "001.webp",
			reencode:    true,
		},
		{
			name:        "tie goes to primary",
			webp:        descending(40000, 2000, 95, 90, 85, 80, 75, 70),
			jpg:         descending(34000, 500, 50, 45, 40, 35, 30, 25, 20, 15, 10),
			wantFormat:  FormatPrimary,
			wantQuality: 70,
			wantSize:    30000,
			wantFile:    "001.webp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			opt, primary, fallback := newFakeOptimizer(20480, tt.webp, tt.jpg)

			result, err := opt.Optimize(testFrame(), dir, "001")
			if err != nil {
				t.Fatalf("Optimize() error = %v", err)
			}

			if !result.OverBudget {
				t.Error("Result should be flagged over budget")
			}
			if result.Format != tt.wantFormat || result.Quality != tt.wantQuality || result.Size != tt.wantSize {
				t.Errorf("Result = %s Q=%d %d bytes, want %s Q=%d %d bytes",
					result.Format, result.Quality, result.Size, tt.wantFormat, tt.wantQuality, tt.wantSize)
			}
			if len(fallback.calls) != len(testFallbackLadder) {
				t.Errorf("Fallback should try every rung, got %v", fallback.calls)
			}

			wantPrimaryCalls := len(testPrimaryLadder)
			if tt.reencode {
				wantPrimaryCalls++
			}
			if len(primary.calls) != wantPrimaryCalls {
				t.Errorf("Primary calls = %v, want %d calls", primary.calls, wantPrimaryCalls)
			}

			assertOnlyFile(t, dir, tt.wantFile)
			if got := fileSize(t, filepath.Join(dir, tt.wantFile)); got != result.Size {
				t.Errorf("File on disk is %d bytes, result says %d", got, result.Size)
			}
		})
	}
}

func TestOptimizeRemovesStaleSibling(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "001.jpg")
	if err := os.WriteFile(stale, []byte("from an earlier run"), 0644); err != nil {
		t.Fatalf("Failed to write stale file: %v", err)
	}

	opt, _, _ := newFakeOptimizer(20480, map[int]int{95: 1000}, nil)
	if _, err := opt.Optimize(testFrame(), dir, "001"); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	assertOnlyFile(t, dir, "001.webp")
}

func TestOptimizeEncodeError(t *testing.T) {
	dir := t.TempDir()
	webp := descending(40000, 2000, 95, 90, 85, 80, 75, 70)
	opt, primary, fallback := newFakeOptimizer(20480, webp, nil)
	fallback.failAt = 40

	_, err := opt.Optimize(testFrame(), dir, "001")
	if !errors.Is(err, ErrEncodeIO) {
		t.Fatalf("Optimize() error = %v, want ErrEncodeIO", err)
	}
	if len(primary.calls) != len(testPrimaryLadder) {
		t.Errorf("Primary calls = %v", primary.calls)
	}
	if !reflect.DeepEqual(fallback.calls, []int{50, 45, 40}) {
		t.Errorf("Search should stop at the failure, fallback calls = %v", fallback.calls)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Failed frame should leave nothing behind, found %d files", len(entries))
	}
}

func TestOptimizeWriteError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-dir")
	opt, _, _ := newFakeOptimizer(20480, map[int]int{95: 1000}, nil)

	_, err := opt.Optimize(testFrame(), missing, "001")
	if !errors.Is(err, ErrEncodeIO) {
		t.Errorf("Optimize() error = %v, want ErrEncodeIO", err)
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	dir := t.TempDir()
	webp := map[int]int{95: 40000, 90: 22000, 85: 30000, 80: 31000, 75: 32000, 70: 33000}
	jpg := descending(40000, 500, 50, 45, 40, 35, 30, 25, 20, 15, 10)

	var runs []Result
	for i := 0; i < 2; i++ {
		opt, _, _ := newFakeOptimizer(20480, webp, jpg)
		result, err := opt.Optimize(testFrame(), dir, "001")
		if err != nil {
			t.Fatalf("run %d: Optimize() error = %v", i, err)
		}
		runs = append(runs, result)
	}

	if runs[0] != runs[1] {
		t.Errorf("Runs differ: %+v vs %+v", runs[0], runs[1])
	}
	assertOnlyFile(t, dir, "001.webp")
}

func TestStdlibJPEG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}

	var high, low bytes.Buffer
	if err := encodeStdlibJPEG(&high, img, 95); err != nil {
		t.Fatalf("encodeStdlibJPEG() error = %v", err)
	}
	if err := encodeStdlibJPEG(&low, img, 10); err != nil {
		t.Fatalf("encodeStdlibJPEG() error = %v", err)
	}
	if !bytes.HasPrefix(high.Bytes(), []byte{0xff, 0xd8}) {
		t.Error("Output is not a JPEG")
	}
	if low.Len() >= high.Len() {
		t.Errorf("Q10 (%d bytes) should be smaller than Q95 (%d bytes)", low.Len(), high.Len())
	}
}
