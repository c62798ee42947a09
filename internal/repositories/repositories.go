// package repositories provides the SQLite persistence layer for the match cache.
package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/mdx/internal/models"
)

// MatchRepository persists resolved source → target matches.
//
// source_id carries a UNIQUE constraint; repeated resolutions of the same
// manga are deduplicated at the schema level.
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new MatchRepository with the given database.
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Create inserts a new cached match.
func (r *MatchRepository) Create(match models.CachedMatch) error {
	if err := match.Validate(); err != nil {
		return err
	}

	_, err := r.db.Exec(
		"INSERT INTO matches (source_id, source_title, target_id, target_title) VALUES (?, ?, ?, ?)",
		match.SourceID, match.SourceTitle, match.TargetID, match.TargetTitle,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	return nil
}

// GetBySourceID retrieves a cached match by its source manga ID.
// Returns sql.ErrNoRows when the manga has not been resolved before.
func (r *MatchRepository) GetBySourceID(sourceID string) (*models.CachedMatch, error) {
	row := r.db.QueryRow(
		"SELECT source_id, source_title, target_id, target_title, created_at FROM matches WHERE source_id = ?",
		sourceID,
	)

	var match models.CachedMatch
	err := row.Scan(&match.SourceID, &match.SourceTitle, &match.TargetID, &match.TargetTitle, &match.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &match, nil
}

// List retrieves all cached matches ordered by creation time.
func (r *MatchRepository) List() ([]models.CachedMatch, error) {
	rows, err := r.db.Query(
		"SELECT source_id, source_title, target_id, target_title, created_at FROM matches ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []models.CachedMatch
	for rows.Next() {
		var match models.CachedMatch
		if err := rows.Scan(&match.SourceID, &match.SourceTitle, &match.TargetID, &match.TargetTitle, &match.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	return matches, nil
}

// Count returns the number of cached matches.
func (r *MatchRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

// Clear removes all cached matches.
func (r *MatchRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}
	return nil
}
