// Package metacache is the durable file-metadata cache consulted during
// indexing. Entries are keyed by an 8-byte identity derived from the
// absolute file path, so re-walking an unchanged tree never touches the
// extractor. A rename produces a new identity; the old row is orphaned.
package metacache

import (
	"crypto/sha1"

	"github.com/gamma-omg/geofind/geometa"
)

// Identity is a fixed-width digest of an absolute file path.
type Identity [8]byte

// PathIdentity derives the cache key for a path. It depends only on the
// path string, so the same path always maps to the same identity.
func PathIdentity(path string) Identity {
	sum := sha1.Sum([]byte(path))
	var id Identity
	copy(id[:], sum[:8])
	return id
}

// Entry is one cached metadata row. BBox is nil when the file was indexed
// without a usable extent.
type Entry struct {
	Class geometa.Class
	BBox  *geometa.BBox
}

// Store is the cache surface the indexer uses.
type Store interface {
	Get(id Identity) (Entry, bool, error)
	Put(id Identity, e Entry) error
	Close() error
}

// NopStore is the fallback when the durable backend cannot be opened:
// every lookup misses and every write is discarded. Indexing still works,
// just without the cross-session speedup.
type NopStore struct{}

func (NopStore) Get(Identity) (Entry, bool, error) { return Entry{}, false, nil }
func (NopStore) Put(Identity, Entry) error         { return nil }
func (NopStore) Close() error                      { return nil }
