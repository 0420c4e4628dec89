package state

import (
	"fmt"
	"time"
)

// TagAffinityEntry is one tag's aggregate signed score.
type TagAffinityEntry struct {
	Tag   string
	Score int
}

// Judgment returns the verdict for a wallpaper. A wallpaper that was never
// judged reports None.
func (s *Store) Judgment(id string) Judgment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var verdict string
	err := s.db.QueryRow(`SELECT verdict FROM judgments WHERE wallpaper_id = ?`, id).Scan(&verdict)
	if err != nil {
		return None
	}
	return Judgment(verdict)
}

// SetJudgment records a verdict for a wallpaper, replacing any previous one.
// Liked and disliked are mutually exclusive, so the last write wins. The
// wallpaper's tags are snapshotted alongside so tag affinity survives index
// refreshes that drop the image.
func (s *Store) SetJudgment(id string, verdict Judgment, tags []string) error {
	if verdict == None {
		return s.ClearJudgment(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO judgments (wallpaper_id, verdict, judged_at)
		VALUES (?, ?, ?)
		ON CONFLICT(wallpaper_id) DO UPDATE SET
			verdict = excluded.verdict,
			judged_at = excluded.judged_at
	`, id, string(verdict), time.Now())
	if err != nil {
		return fmt.Errorf("failed to record judgment: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM judged_tags WHERE wallpaper_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear tag snapshot: %w", err)
	}
	for _, tag := range tags {
		_, err := tx.Exec(`
			INSERT INTO judged_tags (wallpaper_id, tag) VALUES (?, ?)
			ON CONFLICT(wallpaper_id, tag) DO NOTHING
		`, id, tag)
		if err != nil {
			return fmt.Errorf("failed to snapshot tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit judgment: %w", err)
	}

	s.logger.Info("Recorded judgment", "id", id, "verdict", verdict)
	return nil
}

// ClearJudgment removes a wallpaper's verdict and its tag snapshot.
// Clearing an unjudged wallpaper is a no-op.
func (s *Store) ClearJudgment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM judgments WHERE wallpaper_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear judgment: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM judged_tags WHERE wallpaper_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear tag snapshot: %w", err)
	}

	return tx.Commit()
}

// JudgedIDs returns all wallpaper ids carrying the given verdict, ordered
// by id for determinism.
func (s *Store) JudgedIDs(verdict Judgment) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT wallpaper_id FROM judgments WHERE verdict = ? ORDER BY wallpaper_id ASC
	`, string(verdict))
	if err != nil {
		return nil
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if rows.Scan(&id) == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// TagsFor returns the snapshotted tags of a judged wallpaper.
func (s *Store) TagsFor(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT tag FROM judged_tags WHERE wallpaper_id = ? ORDER BY tag ASC`, id)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if rows.Scan(&tag) == nil {
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagAffinity aggregates the signed tag contributions of all judged
// wallpapers: +1 per liked image containing the tag, -1 per disliked one.
// The result is ordered by score descending, ties broken by tag name
// ascending, so repeated calls over the same judgments are identical.
func (s *Store) TagAffinity() []TagAffinityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT t.tag, SUM(CASE j.verdict WHEN 'liked' THEN 1 ELSE -1 END) AS score
		FROM judged_tags t
		JOIN judgments j ON j.wallpaper_id = t.wallpaper_id
		GROUP BY t.tag
		ORDER BY score DESC, t.tag ASC
	`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var entries []TagAffinityEntry
	for rows.Next() {
		var e TagAffinityEntry
		if rows.Scan(&e.Tag, &e.Score) == nil {
			entries = append(entries, e)
		}
	}
	return entries
}
