package config

import (
	"fmt"
	"runtime"
	"time"

	"spinframe/internal/logging"

	"github.com/dustin/go-humanize"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
	GoVersion string
	OS        string
	Arch      string
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String formats the build info for `spinframe version`.
func (b BuildInfo) String() string {
	return fmt.Sprintf("spinframe %s (commit %s, built %s, %s %s/%s)",
		b.Version, b.Commit, b.BuildTime, b.GoVersion, b.OS, b.Arch)
}

// Log prints the effective configuration. source names where it came from,
// such as a config file path or "defaults".
func (c *Config) Log(source string) {
	logging.Info("------------------------------------------------------------")
	logging.Info("spinframe %s (commit %s)", Version, Commit)
	logging.Info("  Started:         %s", time.Now().Format(time.RFC1123))
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION (%s)", source)
	logging.Info("------------------------------------------------------------")
	logging.Info("  INPUT_DIR:           %s", absPath(c.Source.InputDir))
	logging.Info("  EXTENSION:           %s", c.Source.Extension)
	logging.Info("  OUTPUT_DIR:          %s", absPath(c.Thumbnails.OutputDir))
	logging.Info("  THUMBNAIL_CANVAS:    %dx%d", c.Thumbnails.Width, c.Thumbnails.Height)
	logging.Info("  BUDGET:              %s (%d bytes)", humanize.IBytes(uint64(c.Thumbnails.BudgetBytes)), c.Thumbnails.BudgetBytes)
	logging.Info("  WEBP_LADDER:         %v (effort %d)", c.Thumbnails.PrimaryLadder, c.Thumbnails.PrimaryEffort)
	logging.Info("  JPEG_LADDER:         %d..%d step %d", c.Thumbnails.FallbackHigh, c.Thumbnails.FallbackLow, c.Thumbnails.FallbackStep)
	logging.Info("  ANIMATION_OUTPUT:    %s", c.Animation.Output)
	logging.Info("  ANIMATION_CANVAS:    %dx%d", c.Animation.Width, c.Animation.Height)
	logging.Info("  FRAME_DURATION:      %v", c.Animation.FrameDuration())
	logging.Info("  LOOP_COUNT:          %d", c.Animation.LoopCount)
	logging.Info("  ANIMATION_QUALITY:   %d", c.Animation.Quality)
	logging.Info("  FRAME_SKIP:          %d", c.Animation.Skip)
	if c.MetricsFile != "" {
		logging.Info("  METRICS_FILE:        %s", c.MetricsFile)
	} else {
		logging.Info("  METRICS_FILE:        DISABLED")
	}
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())

	if err := CheckFFmpeg(); err != nil {
		logging.Debug("  FFmpeg decode fallback unavailable: %v", err)
	} else {
		logging.Info("  [OK] FFmpeg decode fallback available")
	}

	if logging.IsDebugEnabled() {
		logging.Debug("  Go version:          %s", runtime.Version())
		logging.Debug("  OS/Arch:             %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	logging.Info("")
}
