package main

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gamma-omg/geofind/gazetteer"
	"github.com/gamma-omg/geofind/geometa"
	"github.com/gamma-omg/geofind/metacache"
)

const defaultResultLimit = 12

// Result is one ranked search hit, shaped for direct display.
type Result struct {
	Path     string `json:"path"`
	Recency  string `json:"recency"`
	Kind     string `json:"kind"`
	Geometry string `json:"geometry,omitempty"`
	Region   string `json:"region,omitempty"`
}

// Finder owns the in-memory file index and serves ranked queries against it.
//
// It is a two-state machine: idle, or with one indexing pass in flight. The
// first search on an empty index kicks off a pass and returns empty while
// the index warms up; a pass triggered over an existing index keeps serving
// the old file list until the new one swaps in atomically on completion.
// Cancelled or failed passes publish nothing.
type Finder struct {
	log         *slog.Logger
	root        string
	vectorExts  []string
	rasterExts  []string
	cache       metacache.Store
	extractor   geometa.Extractor
	reprojector geometa.Reprojector
	gaz         *gazetteer.Gazetteer
	now         func() time.Time

	mu               sync.Mutex
	onProgress       []func(percent int)
	files            []FileRecord
	filenameTrigrams map[string]trigramSet
	indexing         bool
	cancelIndexing   context.CancelFunc
}

// OnIndexProgress registers a callback for indexing progress percentages.
// Callbacks run on the indexing goroutine; keep them cheap.
func (f *Finder) OnIndexProgress(fn func(percent int)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onProgress = append(f.onProgress, fn)
}

// Search ranks indexed files against the query and returns at most limit
// results (default 12). A non-nil filter keeps only files whose extent
// intersects it; files with no extent cannot be proven relevant and are
// excluded under a filter, included otherwise. Search never fails: with no
// index yet (or one still warming up) it returns an empty list immediately.
func (f *Finder) Search(query string, limit int, filter *geometa.BBox) []Result {
	f.mu.Lock()
	if len(f.files) == 0 && !f.indexing {
		f.startIndexing()
	}
	files := f.files
	filenameTrigrams := f.filenameTrigrams
	f.mu.Unlock()

	if limit <= 0 {
		limit = defaultResultLimit
	}

	queryTrigrams := trigrams(strings.Join(strings.Fields(strings.ToLower(query)), " "))

	type scored struct {
		rec   *FileRecord
		score float64
	}
	candidates := make([]scored, 0, len(files))
	for i := range files {
		rec := &files[i]
		if filter != nil && (rec.BBox == nil || !rec.BBox.Intersects(*filter)) {
			continue
		}
		candidates = append(candidates, scored{
			rec:   rec,
			score: jaccard(queryTrigrams, filenameTrigrams[rec.Path]),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	now := f.now()
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		region := ""
		if c.rec.BBox != nil {
			region = f.gaz.FindContainingRegion(*c.rec.BBox)
		}
		results = append(results, Result{
			Path:     c.rec.Path,
			Recency:  humanizeAtime(c.rec.LastAccessed, now),
			Kind:     c.rec.Kind,
			Geometry: c.rec.Geometry,
			Region:   region,
		})
	}

	return results
}

// Refresh starts a new indexing pass unless one is already running.
func (f *Finder) Refresh() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.indexing {
		f.startIndexing()
	}
}

// CancelIndexing stops the in-flight pass, if any. The previously served
// index stays untouched.
func (f *Finder) CancelIndexing() {
	f.mu.Lock()
	cancel := f.cancelIndexing
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Indexing reports whether a pass is currently in flight.
func (f *Finder) Indexing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indexing
}

// startIndexing must be called with f.mu held.
func (f *Finder) startIndexing() {
	ctx, cancel := context.WithCancel(context.Background())
	f.indexing = true
	f.cancelIndexing = cancel

	task := &IndexingTask{
		log: f.log,
		walker: walker{
			root:       f.root,
			vectorExts: f.vectorExts,
			rasterExts: f.rasterExts,
		},
		cache:       f.cache,
		extractor:   f.extractor,
		reprojector: f.reprojector,
	}
	for _, fn := range f.onProgress {
		task.OnProgress(fn)
	}

	go func() {
		defer cancel()
		err := task.Run(ctx)

		f.mu.Lock()
		defer f.mu.Unlock()

		f.indexing = false
		f.cancelIndexing = nil

		switch {
		case err == nil:
			f.files = task.files
			f.filenameTrigrams = task.filenameTrigrams
			f.log.Info("index built", "root", f.root, "files", len(task.files))
		case errors.Is(err, context.Canceled):
			f.log.Info("indexing cancelled", "root", f.root)
		default:
			f.log.Warn("indexing failed", "root", f.root, "error", err)
		}
	}()
}
