package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/mdx/internal/models"
	tu "github.com/desertthunder/mdx/internal/testing"
)

func samplePlan() *models.SyncPlan {
	return &models.SyncPlan{
		Actions: []models.SyncAction{
			{
				Kind: models.ActionAdd,
				Match: models.MatchResult{
					Manga:       models.Manga{ID: "md-a", Title: "Alpha"},
					TargetID:    "1",
					TargetTitle: "Alpha",
				},
			},
			{
				Kind:   models.ActionSkip,
				Reason: models.SkipUnresolved,
				Match: models.MatchResult{
					Manga: models.Manga{ID: "md-b", Title: "Beta"},
				},
			},
		},
	}
}

func sampleSummary() *models.SyncSummary {
	return &models.SyncSummary{
		RunID:            "run-123",
		DryRun:           false,
		Total:            5,
		Added:            2,
		AlreadyPresent:   1,
		Unresolved:       1,
		Duplicates:       0,
		Failed:           1,
		UnresolvedTitles: []string{"Beta"},
		FailedTitles:     []string{"Gamma"},
	}
}

func TestRenderPlan(t *testing.T) {
	var buf bytes.Buffer
	RenderPlan(&buf, samplePlan())

	output := buf.String()
	for _, want := range []string{"ACTION", "TITLE", "REASON", "Alpha", "Beta", "add", "skip", "unresolved"} {
		if !strings.Contains(output, want) {
			t.Errorf("plan output missing %q:\n%s", want, output)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, sampleSummary())

	output := buf.String()
	for _, want := range []string{"RUN-123", "live", "Added", "Already present", "Unresolved", "Failed"} {
		if !strings.Contains(output, want) {
			t.Errorf("summary output missing %q:\n%s", want, output)
		}
	}

	t.Run("dry run is labeled", func(t *testing.T) {
		summary := sampleSummary()
		summary.DryRun = true

		var buf bytes.Buffer
		RenderSummary(&buf, summary)

		if !strings.Contains(buf.String(), "dry-run") {
			t.Errorf("expected dry-run label in output:\n%s", buf.String())
		}
	})
}

func TestUnresolvedToCSV(t *testing.T) {
	data, err := UnresolvedToCSV(sampleSummary())
	if err != nil {
		t.Fatalf("failed to generate CSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse generated CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Title" || records[0][1] != "Status" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "Beta" || records[1][1] != "unresolved" {
		t.Errorf("unexpected unresolved row: %v", records[1])
	}
	if records[2][0] != "Gamma" || records[2][1] != "failed" {
		t.Errorf("unexpected failed row: %v", records[2])
	}
}

func TestWriteUnresolvedCSV(t *testing.T) {
	t.Run("writes to the given path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "unresolved.csv")

		written, err := WriteUnresolvedCSV(sampleSummary(), path)
		if err != nil {
			t.Fatalf("failed to write CSV: %v", err)
		}
		if written != path {
			t.Errorf("expected path %s, got %s", path, written)
		}

		tu.AssertFileExists(t, path)
	})

	t.Run("defaults the filename to the run ID", func(t *testing.T) {
		cwd := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, cwd)

		written, err := WriteUnresolvedCSV(sampleSummary(), "")
		if err != nil {
			t.Fatalf("failed to write CSV: %v", err)
		}
		if written != "run-123_unresolved.csv" {
			t.Errorf("unexpected default filename %s", written)
		}
		tu.AssertFileExists(t, written)
	})
}

func TestLibraryToJSON(t *testing.T) {
	t.Run("round-trips entries", func(t *testing.T) {
		manga := []models.Manga{
			{ID: "md-a", Title: "Alpha", Description: "First.", Authors: []string{"Author A"}},
		}

		data, err := LibraryToJSON(manga)
		if err != nil {
			t.Fatalf("failed to generate JSON: %v", err)
		}

		var decoded []models.Manga
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("generated JSON should parse: %v", err)
		}
		if len(decoded) != 1 || decoded[0].Title != "Alpha" {
			t.Errorf("unexpected decoded library: %v", decoded)
		}
	})

	t.Run("nil library yields an empty array", func(t *testing.T) {
		data, err := LibraryToJSON(nil)
		if err != nil {
			t.Fatalf("failed to generate JSON: %v", err)
		}
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("expected empty array, got %s", data)
		}
	})
}

func TestWriteLibraryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")

	manga := []models.Manga{{ID: "md-a", Title: "Alpha"}}
	written, err := WriteLibraryJSON(manga, path)
	if err != nil {
		t.Fatalf("failed to write library: %v", err)
	}
	if written != path {
		t.Errorf("expected path %s, got %s", path, written)
	}

	data := tu.MustReadFile(t, path)

	var decoded []models.Manga
	if err := json.Unmarshal([]byte(data), &decoded); err != nil {
		t.Fatalf("written file should parse as JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Errorf("expected 1 entry, got %d", len(decoded))
	}
}

func TestMatchesToText(t *testing.T) {
	matches := []models.CachedMatch{
		{SourceID: "md-a", SourceTitle: "Alpha", TargetID: "1", TargetTitle: "Alpha", CreatedAt: time.Now()},
	}

	text := string(MatchesToText(matches))
	if !strings.Contains(text, "Cached matches: 1") {
		t.Errorf("expected count header, got:\n%s", text)
	}
	if !strings.Contains(text, "Alpha -> Alpha (1)") {
		t.Errorf("expected match line, got:\n%s", text)
	}
}

func TestRenderMatches(t *testing.T) {
	var buf bytes.Buffer
	RenderMatches(&buf, []models.CachedMatch{
		{SourceID: "md-a", SourceTitle: "Alpha", TargetID: "1", TargetTitle: "Alpha Prime", CreatedAt: time.Now()},
	})

	output := buf.String()
	for _, want := range []string{"SOURCE", "TARGET", "Alpha", "Alpha Prime"} {
		if !strings.Contains(output, want) {
			t.Errorf("matches output missing %q:\n%s", want, output)
		}
	}
}
