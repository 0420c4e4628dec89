// Package state persists the durable per-user state: like/dislike
// judgments, the tag snapshots they contribute to, and the navigable
// wallpaper history. Everything lives in a single SQLite database so
// overlapping invocations serialize on the database lock.
package state

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/errors"
)

// Judgment is the user's verdict on a wallpaper.
type Judgment string

// Judgment values
const (
	None     Judgment = "none"
	Liked    Judgment = "liked"
	Disliked Judgment = "disliked"
)

// Store manages the state database
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex // protects database operations
	logger *slog.Logger
}

// Open opens (creating if necessary) the state database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	store := &Store{db: db, logger: logger}

	if err := store.initialize(); err != nil {
		db.Close()
		// Judgments and history are never silently recreated; a broken
		// database surfaces to the user instead of losing data.
		return nil, errors.NewCorruptStateError(path, err)
	}

	return store, nil
}

// initialize creates the database schema
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS judgments (
		wallpaper_id TEXT PRIMARY KEY,
		verdict TEXT NOT NULL CHECK (verdict IN ('liked', 'disliked')),
		judged_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS judged_tags (
		wallpaper_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		PRIMARY KEY (wallpaper_id, tag)
	);

	CREATE TABLE IF NOT EXISTS history (
		position INTEGER PRIMARY KEY,
		wallpaper_id TEXT NOT NULL,
		set_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS view_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		cursor INTEGER NOT NULL,
		switch_count INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_judgments_verdict ON judgments(verdict);
	CREATE INDEX IF NOT EXISTS idx_judged_tags_tag ON judged_tags(tag);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
