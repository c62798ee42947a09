package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/mdx/internal/models"
	"github.com/desertthunder/mdx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func sampleMatch(sourceID string) models.CachedMatch {
	return models.CachedMatch{
		SourceID:    sourceID,
		SourceTitle: "Alpha",
		TargetID:    "1",
		TargetTitle: "Alpha",
	}
}

func TestMatchRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMatchRepository(db)
		if err := repo.Create(sampleMatch("md-a")); err != nil {
			t.Fatalf("failed to create match: %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count matches: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 match, got %d", count)
		}
	})

	t.Run("Create rejects invalid matches", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMatchRepository(db)
		if err := repo.Create(models.CachedMatch{}); err == nil {
			t.Error("expected validation error for empty match")
		}
	})

	t.Run("Create enforces source uniqueness", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMatchRepository(db)
		if err := repo.Create(sampleMatch("md-a")); err != nil {
			t.Fatalf("failed to create match: %v", err)
		}
		if err := repo.Create(sampleMatch("md-a")); err == nil {
			t.Error("expected UNIQUE constraint error for duplicate source ID")
		}
	})

	t.Run("GetBySourceID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMatchRepository(db)
		if err := repo.Create(sampleMatch("md-a")); err != nil {
			t.Fatalf("failed to create match: %v", err)
		}

		match, err := repo.GetBySourceID("md-a")
		if err != nil {
			t.Fatalf("failed to get match: %v", err)
		}

		if match.TargetID != "1" || match.TargetTitle != "Alpha" {
			t.Errorf("unexpected match: %+v", match)
		}
		if match.CreatedAt.IsZero() {
			t.Error("expected created_at to be populated")
		}
	})

	t.Run("GetBySourceID miss yields ErrNoRows", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMatchRepository(db)
		if _, err := repo.GetBySourceID("md-missing"); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("expected sql.ErrNoRows, got %v", err)
		}
	})

	t.Run("List returns matches in insertion order", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMatchRepository(db)
		for _, id := range []string{"md-a", "md-b", "md-c"} {
			match := sampleMatch(id)
			match.SourceTitle = id
			if err := repo.Create(match); err != nil {
				t.Fatalf("failed to create match %s: %v", id, err)
			}
		}

		matches, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list matches: %v", err)
		}

		if len(matches) != 3 {
			t.Fatalf("expected 3 matches, got %d", len(matches))
		}
		for i, id := range []string{"md-a", "md-b", "md-c"} {
			if matches[i].SourceID != id {
				t.Errorf("match %d out of order: %+v", i, matches[i])
			}
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMatchRepository(db)
		if err := repo.Create(sampleMatch("md-a")); err != nil {
			t.Fatalf("failed to create match: %v", err)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear matches: %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count matches: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty table after clear, got %d", count)
		}
	})
}

func TestMatchCacheAdapter(t *testing.T) {
	t.Run("Lookup miss returns nil without error", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		adapter := NewMatchCacheAdapter(NewMatchRepository(db))

		match, err := adapter.Lookup("md-missing")
		if err != nil {
			t.Fatalf("expected no error on miss, got %v", err)
		}
		if match != nil {
			t.Errorf("expected nil match on miss, got %+v", match)
		}
	})

	t.Run("Store then Lookup round-trips", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		adapter := NewMatchCacheAdapter(NewMatchRepository(db))

		if err := adapter.Store(sampleMatch("md-a")); err != nil {
			t.Fatalf("failed to store match: %v", err)
		}

		match, err := adapter.Lookup("md-a")
		if err != nil {
			t.Fatalf("failed to look up match: %v", err)
		}
		if match == nil || match.TargetID != "1" {
			t.Errorf("unexpected lookup result: %+v", match)
		}
	})

	t.Run("Store tolerates duplicates", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		adapter := NewMatchCacheAdapter(NewMatchRepository(db))

		if err := adapter.Store(sampleMatch("md-a")); err != nil {
			t.Fatalf("failed to store match: %v", err)
		}

		// Re-storing the same source must be a no-op, not an error.
		duplicate := sampleMatch("md-a")
		duplicate.TargetID = "999"
		if err := adapter.Store(duplicate); err != nil {
			t.Fatalf("expected duplicate store to succeed, got %v", err)
		}

		match, err := adapter.Lookup("md-a")
		if err != nil {
			t.Fatalf("failed to look up match: %v", err)
		}
		if match.TargetID != "1" {
			t.Errorf("expected existing row to win, got %+v", match)
		}
	})
}
