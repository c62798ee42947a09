package library

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/desertthunder/mdx/internal/shared"
	tu "github.com/desertthunder/mdx/internal/testing"
)

const sampleLibrary = `[
	{"id": "md-a", "title": "Alpha", "description": "First entry.", "authors": ["Author A"], "status": "ongoing", "year": 2019},
	{"id": "md-b", "title": "Beta", "description": "Second entry."},
	{"id": "md-c", "title": "Gamma"}
]`

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.json")
	tu.MustWriteFile(t, path, content)
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads a valid library", func(t *testing.T) {
		lib, err := Load(writeLibrary(t, sampleLibrary))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if lib.Len() != 3 {
			t.Errorf("expected 3 entries, got %d", lib.Len())
		}
	})

	t.Run("loads an empty library", func(t *testing.T) {
		lib, err := Load(writeLibrary(t, "[]"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if lib.Len() != 0 {
			t.Errorf("expected empty library, got %d entries", lib.Len())
		}
	})

	t.Run("missing file fails with load error", func(t *testing.T) {
		_, err := Load("/nonexistent/library.json")
		if !errors.Is(err, shared.ErrLoadFailed) {
			t.Errorf("expected ErrLoadFailed, got %v", err)
		}
	})

	t.Run("malformed JSON fails with load error", func(t *testing.T) {
		_, err := Load(writeLibrary(t, "{not json"))
		if !errors.Is(err, shared.ErrLoadFailed) {
			t.Errorf("expected ErrLoadFailed, got %v", err)
		}
	})
}

func TestTitles(t *testing.T) {
	lib, err := Load(writeLibrary(t, sampleLibrary))
	if err != nil {
		t.Fatalf("failed to load library: %v", err)
	}

	titles := lib.Titles()
	want := []string{"Alpha", "Beta", "Gamma"}

	if len(titles) != len(want) {
		t.Fatalf("expected %d titles, got %d", len(want), len(titles))
	}
	for i, title := range want {
		if titles[i] != title {
			t.Errorf("title %d: expected %s, got %s (file order must be preserved)", i, title, titles[i])
		}
	}
}

func TestSelect(t *testing.T) {
	lib, err := Load(writeLibrary(t, sampleLibrary))
	if err != nil {
		t.Fatalf("failed to load library: %v", err)
	}

	t.Run("returns the description", func(t *testing.T) {
		if got := lib.Select("Alpha"); got != "First entry." {
			t.Errorf("expected 'First entry.', got %q", got)
		}
	})

	t.Run("entry without description yields empty string", func(t *testing.T) {
		if got := lib.Select("Gamma"); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("unknown title yields not found", func(t *testing.T) {
		if got := lib.Select("Missing"); got != "not found." {
			t.Errorf("expected %q, got %q", "not found.", got)
		}
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		if got := lib.Select("alpha"); got != "not found." {
			t.Errorf("expected %q, got %q", "not found.", got)
		}
	})
}

func TestGet(t *testing.T) {
	lib, err := Load(writeLibrary(t, sampleLibrary))
	if err != nil {
		t.Fatalf("failed to load library: %v", err)
	}

	t.Run("returns the full entry", func(t *testing.T) {
		entry, ok := lib.Get("Alpha")
		if !ok {
			t.Fatal("expected entry to be found")
		}
		if entry.ID != "md-a" || entry.Year != 2019 || entry.Status != "ongoing" {
			t.Errorf("unexpected entry: %+v", entry)
		}
		if len(entry.Authors) != 1 || entry.Authors[0] != "Author A" {
			t.Errorf("unexpected authors: %v", entry.Authors)
		}
	})

	t.Run("unknown title reports not found", func(t *testing.T) {
		if _, ok := lib.Get("Missing"); ok {
			t.Error("expected entry to be absent")
		}
	})
}
