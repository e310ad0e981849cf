package frames

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"spinframe/internal/mediatypes"
)

// ErrNoSources is returned by Scan when the directory is missing or holds no
// file with the wanted extension.
var ErrNoSources = errors.New("no source images found")

// Scan returns the regular files in dir whose extension matches ext, sorted
// lexicographically. Hidden files and subdirectories are ignored.
func Scan(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s: directory does not exist", ErrNoSources, dir)
		}
		return nil, fmt.Errorf("failed to read source directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.Type().IsRegular() {
			continue
		}
		if !mediatypes.MatchesExt(name, ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s matching *%s", ErrNoSources, dir, mediatypes.NormalizeExt(ext))
	}

	sort.Strings(paths)
	return paths, nil
}

// Stride keeps every (skip+1)-th path starting with the first. A skip of 0
// keeps all of them.
func Stride(paths []string, skip int) []string {
	if skip <= 0 {
		return paths
	}
	selected := make([]string, 0, (len(paths)+skip)/(skip+1))
	for i := 0; i < len(paths); i += skip + 1 {
		selected = append(selected, paths[i])
	}
	return selected
}
