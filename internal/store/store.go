// Package store persists the itinerary locally: a small key-value table
// of opaque string blobs in a sqlite file under the planner's data dir.
// Two scopes live side by side: the user-editable copy (version-gated on
// load) and the feed cache (last good parse + fetch timestamp).
//
// Every operation is best-effort. A missing, unreadable, or stale blob
// loads as "none"; a failed write logs a warning and returns. No failure
// here is ever surfaced to the user or fatal to the caller.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"wayplan/internal/model"
	"wayplan/internal/store/migrations"
)

const (
	dbFileName = "wayplan.sqlite"

	keyItinerary     = "itinerary"
	keyFeedItinerary = "feed/itinerary"
	keyFeedFetchedAt = "feed/fetchedAt"
)

// Store is the planner's local persistence handle. A nil *Store is valid
// and behaves as "storage disabled": loads return none, saves are no-ops.
type Store struct {
	db *sql.DB
}

// Open creates the data dir if needed, opens the sqlite file, and runs
// the embedded migrations.
func Open(ctx context.Context, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store.Open: migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store.Open: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the sqlite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) get(key string) (string, bool) {
	if s == nil || s.db == nil {
		return "", false
	}
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		slog.Warn("store read failed", "key", key, "err", err)
		return "", false
	}
	return v, true
}

func (s *Store) set(key, value string) {
	if s == nil || s.db == nil {
		return
	}
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		slog.Warn("store write failed", "key", key, "err", err)
	}
}

func (s *Store) delete(key string) {
	if s == nil || s.db == nil {
		return
	}
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		slog.Warn("store delete failed", "key", key, "err", err)
	}
}

// Load returns the persisted editable itinerary, or ok=false when nothing
// usable is stored. A blob whose schema version differs from the current
// one is discarded with a warning, never merged or upgraded.
func (s *Store) Load() (*model.Itinerary, bool) {
	blob, ok := s.get(keyItinerary)
	if !ok {
		return nil, false
	}
	var it model.Itinerary
	if err := json.Unmarshal([]byte(blob), &it); err != nil {
		slog.Warn("persisted itinerary is malformed, ignoring", "err", err)
		return nil, false
	}
	if it.Version != model.SchemaVersion {
		slog.Warn("persisted itinerary version mismatch, discarding",
			"stored", it.Version, "current", model.SchemaVersion)
		return nil, false
	}
	return &it, true
}

// Save serializes the full itinerary, write-through. Failures are logged
// and swallowed; the in-memory copy is never rolled back.
func (s *Store) Save(it *model.Itinerary) {
	blob, err := json.Marshal(it)
	if err != nil {
		slog.Warn("itinerary serialize failed", "err", err)
		return
	}
	s.set(keyItinerary, string(blob))
}

// Reset discards the persisted editable copy (explicit reset-to-default).
// The feed cache is left alone.
func (s *Store) Reset() {
	s.delete(keyItinerary)
}

// LoadFeedCache returns the last successfully parsed feed and its fetch
// timestamp.
func (s *Store) LoadFeedCache() (*model.Itinerary, time.Time, bool) {
	blob, ok := s.get(keyFeedItinerary)
	if !ok {
		return nil, time.Time{}, false
	}
	var it model.Itinerary
	if err := json.Unmarshal([]byte(blob), &it); err != nil {
		slog.Warn("feed cache is malformed, ignoring", "err", err)
		return nil, time.Time{}, false
	}
	var fetchedAt time.Time
	if ts, ok := s.get(keyFeedFetchedAt); ok {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			fetchedAt = t
		}
	}
	return &it, fetchedAt, true
}

// SaveFeedCache stores the parsed feed and its fetch timestamp.
func (s *Store) SaveFeedCache(it *model.Itinerary, fetchedAt time.Time) {
	blob, err := json.Marshal(it)
	if err != nil {
		slog.Warn("feed cache serialize failed", "err", err)
		return
	}
	s.set(keyFeedItinerary, string(blob))
	s.set(keyFeedFetchedAt, fetchedAt.UTC().Format(time.RFC3339))
}
