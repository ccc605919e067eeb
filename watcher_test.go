package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamma-omg/geofind/metacache"
)

func Test_WatchReindexesOnChange(t *testing.T) {
	tmp := t.TempDir()

	f := newTestFinder(t, tmp, newMemCache(), &fakeExtractor{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, f.Watch(ctx, 50*time.Millisecond))

	writeFile(t, tmp, "rivers.gpkg")

	require.Eventually(t, func() bool {
		return len(f.Search("rivers", 0, nil)) == 1
	}, 5*time.Second, 20*time.Millisecond)

	// files in newly created directories are picked up too
	writeFile(t, tmp, "sub/lakes.gpkg")

	require.Eventually(t, func() bool {
		return len(f.Search("lakes", 0, nil)) == 2
	}, 5*time.Second, 20*time.Millisecond)
}

func Test_WatchMergesEventBurstIntoOnePass(t *testing.T) {
	tmp := t.TempDir()

	ex := &fakeExtractor{}
	f := newTestFinder(t, tmp, metacache.NopStore{}, ex)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, f.Watch(ctx, 150*time.Millisecond))

	// a burst inside the debounce window must settle into a single pass
	for _, name := range []string{"a.gpkg", "b.gpkg", "c.gpkg"} {
		writeFile(t, tmp, name)
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return len(f.files) == 3
	}, 5*time.Second, 20*time.Millisecond)

	// quiet period: no stale timer fire, no second pass re-extracting
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, 3, ex.callCount())
}

func Test_WatchIgnoresIrrelevantFiles(t *testing.T) {
	tmp := t.TempDir()

	f := newTestFinder(t, tmp, newMemCache(), &fakeExtractor{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, f.Watch(ctx, 50*time.Millisecond))

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)

	assert.False(t, f.Indexing())
	assert.Empty(t, f.Search("notes", 0, nil))
}

func Test_WatchFailsOnMissingRoot(t *testing.T) {
	f := newTestFinder(t, filepath.Join(t.TempDir(), "gone"), newMemCache(), &fakeExtractor{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, f.Watch(ctx, 50*time.Millisecond))
}
