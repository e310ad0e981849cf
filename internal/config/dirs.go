package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"spinframe/internal/logging"
)

// EnsureDirectory creates path if needed and checks that it is writable.
// name is used in log lines ("output", "animation").
func EnsureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", name, err)
		}
	case err != nil:
		return fmt.Errorf("failed to stat %s directory: %w", name, err)
	case !info.IsDir():
		return fmt.Errorf("%s path %s exists but is not a directory", name, path)
	}

	if err := testWriteAccess(path); err != nil {
		return fmt.Errorf("%s directory is not writable: %w", name, err)
	}
	logging.Debug("    [OK] %s directory ready", name)
	return nil
}

func testWriteAccess(dir string) error {
	testFile, err := os.CreateTemp(dir, ".write-test-*")
	if err != nil {
		return err
	}
	testFile.Close()
	if err := os.Remove(testFile.Name()); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile.Name(), err)
	}
	return nil
}

// CheckFFmpeg reports whether ffmpeg is on PATH for the last-resort decoder.
func CheckFFmpeg() error {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("ffmpeg not found in PATH")
	}
	logging.Debug("  FFmpeg path: %s", path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return fmt.Errorf("failed to get ffmpeg version: %w", err)
	}

	if first, _, _ := strings.Cut(string(output), "\n"); first != "" {
		logging.Debug("  FFmpeg version: %s", strings.TrimSpace(first))
	}
	return nil
}

// absPath resolves path for display, falling back to path itself.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// sameDirectory reports whether a and b name the same directory, either by
// absolute path or, when both exist, by file identity (symlinks, bind mounts).
func sameDirectory(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	if absPath(a) == absPath(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
