package main

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// walker enumerates candidate geodata files under a root, filtering by
// extension and skipping hidden path segments. It is the first phase of an
// indexing pass, so the progress denominator is stable during the second.
type walker struct {
	root       string
	vectorExts []string
	rasterExts []string
}

func (w *walker) matchesVector(path string) bool {
	return hasAnySuffix(path, w.vectorExts)
}

func (w *walker) matchesRaster(path string) bool {
	return hasAnySuffix(path, w.rasterExts)
}

// collect returns every matching file path under the root. Walk errors on
// individual entries are skipped, not fatal; cancellation is checked at
// every directory level and file.
func (w *walker) collect(ctx context.Context) ([]string, error) {
	var candidates []string

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			return nil // unreadable entry, keep walking
		}

		name := d.Name()
		if d.IsDir() {
			if path != w.root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if w.matchesVector(name) || w.matchesRaster(name) {
			candidates = append(candidates, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return candidates, nil
}

func hasAnySuffix(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
