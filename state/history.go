package state

import (
	"database/sql"
	"fmt"
	"time"

	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/errors"
)

// HistoryEntry is one shown wallpaper in the navigable history.
type HistoryEntry struct {
	ID      string
	SetAt   time.Time
	Current bool
}

// Current returns the wallpaper id at the history cursor.
func (s *Store) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cursor, ok := s.cursor()
	if !ok {
		return "", false
	}

	var id string
	err := s.db.QueryRow(`SELECT wallpaper_id FROM history WHERE position = ?`, cursor).Scan(&id)
	if err != nil {
		return "", false
	}
	return id, true
}

// Append records a newly selected wallpaper. Entries past the cursor (the
// forward branch left by Back) are discarded first, then the new entry
// becomes the cursor. This is the only mutation that shrinks the history.
func (s *Store) Append(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cursor := int64(-1)
	var cur sql.NullInt64
	err = tx.QueryRow(`SELECT cursor FROM view_state WHERE id = 1`).Scan(&cur)
	if err == nil && cur.Valid {
		cursor = cur.Int64
	}

	if _, err := tx.Exec(`DELETE FROM history WHERE position > ?`, cursor); err != nil {
		return fmt.Errorf("failed to truncate history: %w", err)
	}

	next := cursor + 1
	if _, err := tx.Exec(`
		INSERT INTO history (position, wallpaper_id, set_at) VALUES (?, ?, ?)
	`, next, id, time.Now()); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO view_state (id, cursor, switch_count, updated_at)
		VALUES (1, ?, 0, ?)
		ON CONFLICT(id) DO UPDATE SET
			cursor = excluded.cursor,
			updated_at = excluded.updated_at
	`, next, time.Now()); err != nil {
		return fmt.Errorf("failed to update cursor: %w", err)
	}

	// Bounded history: drop the oldest entries past the cap. Positions stay
	// monotonic so the cursor value remains valid.
	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&count); err == nil &&
		count > constants.MaxHistorySize {
		_, err := tx.Exec(`
			DELETE FROM history WHERE position IN (
				SELECT position FROM history ORDER BY position ASC LIMIT ?
			)
		`, count-constants.MaxHistorySize)
		if err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
	}

	return tx.Commit()
}

// Back moves the cursor one entry toward the oldest wallpaper and returns
// the id it now points at. At the oldest entry it reports ErrAtStart and
// leaves the cursor in place.
func (s *Store) Back() (string, error) {
	return s.move(`SELECT MAX(position) FROM history WHERE position < ?`, errors.ErrAtStart)
}

// Forward moves the cursor one entry toward the newest wallpaper. At the
// newest entry it reports ErrAtEnd.
func (s *Store) Forward() (string, error) {
	return s.move(`SELECT MIN(position) FROM history WHERE position > ?`, errors.ErrAtEnd)
}

func (s *Store) move(query string, boundary error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var cur sql.NullInt64
	if err := tx.QueryRow(`SELECT cursor FROM view_state WHERE id = 1`).Scan(&cur); err != nil || !cur.Valid {
		return "", boundary
	}

	var target sql.NullInt64
	if err := tx.QueryRow(query, cur.Int64).Scan(&target); err != nil || !target.Valid {
		return "", boundary
	}

	var id string
	if err := tx.QueryRow(`SELECT wallpaper_id FROM history WHERE position = ?`, target.Int64).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to read history entry: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE view_state SET cursor = ?, updated_at = ? WHERE id = 1
	`, target.Int64, time.Now()); err != nil {
		return "", fmt.Errorf("failed to move cursor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit cursor move: %w", err)
	}
	return id, nil
}

// History returns the ordered history, oldest first. The entry under the
// cursor is flagged as current.
func (s *Store) History(limit int) []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = constants.MaxHistorySize
	}

	cursor, hasCursor := s.cursor()

	rows, err := s.db.Query(`
		SELECT position, wallpaper_id, set_at FROM history ORDER BY position ASC LIMIT ?
	`, limit)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var pos int64
		var e HistoryEntry
		if rows.Scan(&pos, &e.ID, &e.SetAt) == nil {
			e.Current = hasCursor && pos == cursor
			entries = append(entries, e)
		}
	}
	return entries
}

// IncrementSwitchCount bumps the lifetime wallpaper switch counter.
func (s *Store) IncrementSwitchCount() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO view_state (id, cursor, switch_count, updated_at)
		VALUES (1, -1, 1, ?)
		ON CONFLICT(id) DO UPDATE SET
			switch_count = switch_count + 1,
			updated_at = excluded.updated_at
	`, time.Now())
	return err
}

// SwitchCount returns the lifetime wallpaper switch counter.
func (s *Store) SwitchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	s.db.QueryRow(`SELECT switch_count FROM view_state WHERE id = 1`).Scan(&count)
	return count
}

// cursor reads the current cursor position. Callers hold s.mu.
func (s *Store) cursor() (int64, bool) {
	var cur sql.NullInt64
	err := s.db.QueryRow(`SELECT cursor FROM view_state WHERE id = 1`).Scan(&cur)
	if err != nil || !cur.Valid || cur.Int64 < 0 {
		return 0, false
	}
	return cur.Int64, true
}
