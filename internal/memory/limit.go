package memory

import (
	"fmt"
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"spinframe/internal/logging"

	"github.com/dustin/go-humanize"
)

// DefaultRatio is the share of the container limit given to the Go heap.
// The rest is left for libvips and the ffmpeg decode fallback.
const DefaultRatio = 0.75

// Source names where a heap limit came from.
type Source string

const (
	SourceNone        Source = "none"
	SourceGoMemLimit  Source = "GOMEMLIMIT"
	SourceMemoryLimit Source = "MEMORY_LIMIT"
)

// Limit describes the outcome of Configure.
type Limit struct {
	Source Source
	// Container is the MEMORY_LIMIT value in bytes, 0 if unused.
	Container int64
	// Heap is the Go soft memory limit in bytes, 0 if none was set.
	Heap  int64
	Ratio float64
}

// Configure applies the heap limit described by the environment. Call it
// first thing in main.
func Configure() Limit {
	return configure(os.Getenv, debug.SetMemoryLimit)
}

func configure(getenv func(string) string, setLimit func(int64) int64) Limit {
	if raw := getenv("GOMEMLIMIT"); raw != "" {
		current := setLimit(-1)
		if current <= 0 || current == math.MaxInt64 {
			logging.Warn("GOMEMLIMIT=%q was not accepted by the runtime", raw)
			return Limit{Source: SourceNone}
		}
		logging.Info("GOMEMLIMIT set via environment: %s", humanize.IBytes(uint64(current)))
		return Limit{Source: SourceGoMemLimit, Heap: current}
	}

	raw := getenv("MEMORY_LIMIT")
	if raw == "" {
		logging.Debug("MEMORY_LIMIT not set, leaving GOMEMLIMIT unconfigured")
		return Limit{Source: SourceNone}
	}

	container, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || container <= 0 {
		logging.Warn("Ignoring invalid MEMORY_LIMIT %q", raw)
		return Limit{Source: SourceNone}
	}

	ratio, err := parseRatio(getenv("MEMORY_RATIO"))
	if err != nil {
		logging.Warn("%v, using default %.2f", err, DefaultRatio)
		ratio = DefaultRatio
	}

	heap := int64(float64(container) * ratio)
	setLimit(heap)

	logging.Info("Configured GOMEMLIMIT: %s (%.0f%% of %s container limit)",
		humanize.IBytes(uint64(heap)), ratio*100, humanize.IBytes(uint64(container)))

	return Limit{Source: SourceMemoryLimit, Container: container, Heap: heap, Ratio: ratio}
}

func parseRatio(raw string) (float64, error) {
	if raw == "" {
		return DefaultRatio, nil
	}
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid MEMORY_RATIO %q", raw)
	}
	if ratio <= 0 || ratio > 1 {
		return 0, fmt.Errorf("MEMORY_RATIO %q out of range (0, 1]", raw)
	}
	return ratio, nil
}
