package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spinframe/internal/animation"
	"spinframe/internal/config"
	"spinframe/internal/filesystem"
	"spinframe/internal/logging"
	"spinframe/internal/media"
	"spinframe/internal/metrics"

	"github.com/gofrs/flock"
)

var (
	// ErrMissingInput means the source directory is missing or has no
	// matching images. Nothing was written.
	ErrMissingInput = errors.New("missing input")

	// ErrNoFrames means the animation had no frame to encode.
	ErrNoFrames = animation.ErrNoFrames

	// ErrLocked means another run holds the lock for the same target.
	ErrLocked = errors.New("another spinframe run is using this output")
)

// Setup prepares process-wide state for a run: the libvips encoder, the
// filesystem volume labels and the metric series. Call it once before
// Thumbnails or Animation.
func Setup(cfg *config.Config) error {
	if err := media.InitVips(); err != nil {
		return fmt.Errorf("failed to initialize libvips: %w", err)
	}

	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		"input":  cfg.Source.InputDir,
		"output": cfg.Thumbnails.OutputDir,
	}))
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	metrics.InitializeMetrics()
	return nil
}

// AcquireLock takes a non-blocking exclusive lock for target. The lock file
// is created next to target. Release it with releaseLock, which also removes
// the file.
func AcquireLock(target string) (*flock.Flock, error) {
	path := config.LockPath(filepath.Clean(target))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	logging.Debug("Acquired lock %s", path)
	return lock, nil
}

// releaseLock removes the lock file while still holding the lock, then
// unlocks.
func releaseLock(lock *flock.Flock) {
	if _, err := filesystem.RemoveIfExists(lock.Path(), filesystem.DefaultRetryConfig()); err != nil {
		logging.Warn("failed to remove lock file %s: %v", lock.Path(), err)
	}
	if err := lock.Unlock(); err != nil {
		logging.Warn("failed to release lock %s: %v", lock.Path(), err)
	}
}

// finish records run timing and writes the metrics textfile if configured.
func finish(cfg *config.Config, pipelineName string, start time.Time) {
	metrics.RunDuration.WithLabelValues(pipelineName).Set(time.Since(start).Seconds())
	metrics.RunTimestamp.WithLabelValues(pipelineName).Set(float64(time.Now().Unix()))
	if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		logging.Warn("%v", err)
	}
}
