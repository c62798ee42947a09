package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/desertthunder/mdx/internal/models"
)

// MatchCacheAdapter adapts MatchRepository to the cache interface consumed by
// the sync engine. A miss is reported as a nil match with a nil error so the
// engine falls through to a live search.
type MatchCacheAdapter struct {
	repo *MatchRepository
}

// NewMatchCacheAdapter creates an adapter wrapping the given repository.
func NewMatchCacheAdapter(repo *MatchRepository) *MatchCacheAdapter {
	return &MatchCacheAdapter{repo: repo}
}

// Lookup returns the cached match for a source manga ID, or nil on a miss.
func (a *MatchCacheAdapter) Lookup(sourceID string) (*models.CachedMatch, error) {
	match, err := a.repo.GetBySourceID(sourceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return match, nil
}

// Store persists a resolved match. Re-storing an already cached source ID is
// not an error; the existing row wins.
func (a *MatchCacheAdapter) Store(match models.CachedMatch) error {
	err := a.repo.Create(match)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return nil
	}
	return err
}
