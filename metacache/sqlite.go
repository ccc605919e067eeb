package metacache

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gamma-omg/geofind/geometa"
)

const schema = `
CREATE TABLE IF NOT EXISTS files (
	file_path_hash BLOB PRIMARY KEY,
	bbox_minx REAL,
	bbox_miny REAL,
	bbox_maxx REAL,
	bbox_maxy REAL,
	cache_time INTEGER,
	geometry_kind INTEGER
);
`

// SQLiteStore persists metadata entries in a single-table SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the cache database at path.
// With reset set, existing rows are dropped first.
func NewSQLiteStore(path string, reset bool) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open cache db: %w", err)
	}

	if reset {
		if _, err := db.Exec("DROP TABLE IF EXISTS files"); err != nil {
			db.Close()
			return nil, fmt.Errorf("unable to reset cache db: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to initialize cache db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// OpenOrNop opens the SQLite cache, degrading to a NopStore when the backend
// is unavailable. Degrading is not an error; it is logged and indexing
// proceeds without cross-session reuse.
func OpenOrNop(path string, reset bool, log *slog.Logger) Store {
	store, err := NewSQLiteStore(path, reset)
	if err != nil {
		log.Warn("metadata cache unavailable, running without it", "path", path, "error", err)
		return NopStore{}
	}

	return store
}

func (s *SQLiteStore) Get(id Identity) (Entry, bool, error) {
	row := s.db.QueryRow(
		`SELECT bbox_minx, bbox_miny, bbox_maxx, bbox_maxy, geometry_kind
		 FROM files WHERE file_path_hash = ?`, id[:])

	var minx, miny, maxx, maxy sql.NullFloat64
	var kind sql.NullInt64
	err := row.Scan(&minx, &miny, &maxx, &maxy, &kind)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache lookup: %w", err)
	}

	e := Entry{Class: geometa.Class(kind.Int64)}
	if minx.Valid && miny.Valid && maxx.Valid && maxy.Valid {
		e.BBox = &geometa.BBox{
			MinX: minx.Float64,
			MinY: miny.Float64,
			MaxX: maxx.Float64,
			MaxY: maxy.Float64,
		}
	}

	return e, true, nil
}

func (s *SQLiteStore) Put(id Identity, e Entry) error {
	var minx, miny, maxx, maxy any
	if e.BBox != nil {
		minx, miny, maxx, maxy = e.BBox.MinX, e.BBox.MinY, e.BBox.MaxX, e.BBox.MaxY
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO files
		 (file_path_hash, bbox_minx, bbox_miny, bbox_maxx, bbox_maxy, cache_time, geometry_kind)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id[:], minx, miny, maxx, maxy, time.Now().Unix(), int64(e.Class))
	if err != nil {
		return fmt.Errorf("cache write: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
