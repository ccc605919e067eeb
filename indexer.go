package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gamma-omg/geofind/geometa"
	"github.com/gamma-omg/geofind/metacache"
)

// FileRecord is one indexed file. Records are immutable once built; a new
// walk replaces the whole set rather than merging into it.
type FileRecord struct {
	Path         string
	LastAccessed time.Time
	LastModified time.Time
	Kind         string // "raster" or "vector"
	Geometry     string // "point", "line", "polygon", or "" for rasters/unknowns
	BBox         *geometa.BBox
}

// IndexingTask is one cancellable indexing pass: enumerate candidates, then
// per file reuse cached metadata or extract fresh, building the file list
// and the per-filename trigram cache the search pipeline ranks against.
//
// Results in files/filenameTrigrams are only meaningful after Run returns
// nil; a cancelled or failed pass leaves nothing published.
type IndexingTask struct {
	log         *slog.Logger
	walker      walker
	cache       metacache.Store
	extractor   geometa.Extractor
	reprojector geometa.Reprojector

	onProgress   []func(percent int)
	lastProgress int

	files            []FileRecord
	filenameTrigrams map[string]trigramSet
}

// OnProgress registers a callback fired whenever the integer progress
// percentage changes. Callbacks run on the task goroutine.
func (t *IndexingTask) OnProgress(fn func(percent int)) {
	t.onProgress = append(t.onProgress, fn)
}

func (t *IndexingTask) setProgress(processed, total int) {
	p := 100 * processed / total
	if p == t.lastProgress {
		return
	}

	t.lastProgress = p
	for _, fn := range t.onProgress {
		fn(p)
	}
}

// Run executes the pass. It returns context.Canceled when cancelled;
// per-file extraction failures are logged and skipped, never fatal.
func (t *IndexingTask) Run(ctx context.Context) error {
	candidates, err := t.walker.collect(ctx)
	if err != nil {
		return err
	}

	t.files = make([]FileRecord, 0, len(candidates))
	t.filenameTrigrams = make(map[string]trigramSet, len(candidates))

	for i, path := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, ok := t.processFile(path)
		if ok {
			t.files = append(t.files, rec)
			t.filenameTrigrams[rec.Path] = trigrams(filepath.Base(rec.Path))
		}

		t.setProgress(i+1, len(candidates))
	}

	// a cancellation landing during the last file must still discard the pass
	return ctx.Err()
}

func (t *IndexingTask) processFile(path string) (FileRecord, bool) {
	info, err := os.Stat(path)
	if err != nil {
		t.log.Warn("skipping unreadable file", "path", path, "error", err)
		return FileRecord{}, false
	}

	rec := FileRecord{
		Path:         path,
		LastAccessed: atime(info),
		LastModified: info.ModTime(),
	}
	if t.walker.matchesRaster(path) {
		rec.Kind = "raster"
	} else {
		rec.Kind = "vector"
	}

	id := metacache.PathIdentity(path)

	entry, hit, err := t.cache.Get(id)
	if err != nil {
		t.log.Warn("cache lookup failed", "path", path, "error", err)
	}
	if hit {
		if kind := entry.Class.Kind(); kind != "" {
			rec.Kind = kind
		}
		rec.Geometry = entry.Class.Geometry()
		rec.BBox = entry.BBox
		return rec, true
	}

	class, bbox, err := t.extract(path)
	if err != nil {
		// the file stays findable by name, just without an extent
		t.log.Warn("metadata extraction failed", "path", path, "error", err)
		return rec, true
	}

	if kind := class.Kind(); kind != "" {
		rec.Kind = kind
	}
	rec.Geometry = class.Geometry()
	rec.BBox = bbox

	if err := t.cache.Put(id, metacache.Entry{Class: class, BBox: bbox}); err != nil {
		t.log.Warn("cache write failed", "path", path, "error", err)
	}

	return rec, true
}

func (t *IndexingTask) extract(path string) (geometa.Class, *geometa.BBox, error) {
	if t.extractor == nil {
		return geometa.ClassUnknown, nil, geometa.ErrUnsupported
	}

	raw, err := t.extractor.Extract(path)
	if err != nil {
		return geometa.ClassUnknown, nil, err
	}

	return geometa.Normalize(raw, t.reprojector)
}
