// package formatter renders sync plans, summaries, and library exports to
// various formats (table, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/desertthunder/mdx/internal/models"
	"github.com/desertthunder/mdx/internal/shared"
)

// RenderPlan writes a sync plan as a table with columns: Action, Title, Target, Reason
func RenderPlan(w io.Writer, plan *models.SyncPlan) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Action", "Title", "Target", "Reason"})

	for _, action := range plan.Actions {
		target := ""
		if action.Match.TargetID != "" {
			target = action.Match.TargetTitle
		}
		t.AppendRow(table.Row{action.Kind.String(), action.Match.Manga.Title, target, action.Reason})
	}

	t.Render()
}

// RenderSummary writes a sync summary as a key/value table.
func RenderSummary(w io.Writer, summary *models.SyncSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	mode := "live"
	if summary.DryRun {
		mode = "dry-run"
	}

	t.AppendHeader(table.Row{"Sync", summary.RunID})
	t.AppendRow(table.Row{"Mode", mode})
	t.AppendRow(table.Row{"Followed", summary.Total})
	t.AppendRow(table.Row{"Added", summary.Added})
	t.AppendRow(table.Row{"Already present", summary.AlreadyPresent})
	t.AppendRow(table.Row{"Unresolved", summary.Unresolved})
	t.AppendRow(table.Row{"Duplicates", summary.Duplicates})
	t.AppendRow(table.Row{"Failed", summary.Failed})

	t.Render()
}

// UnresolvedToCSV converts a summary's unresolved and failed titles to CSV
// with columns: Title, Status
func UnresolvedToCSV(summary *models.SyncSummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Status"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, title := range summary.UnresolvedTitles {
		if err := writer.Write([]string{title, "unresolved"}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, title := range summary.FailedTitles {
		if err := writer.Write([]string{title, "failed"}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteUnresolvedCSV writes the unresolved/failed titles of a summary to a
// CSV file. Defaults to {runID}_unresolved.csv.
func WriteUnresolvedCSV(summary *models.SyncSummary, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_unresolved.csv", summary.RunID)
	}

	csvData, err := UnresolvedToCSV(summary)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// LibraryToJSON generates a pretty-printed JSON representation of an exported
// library, usable as a viewer library file.
func LibraryToJSON(manga []models.Manga) ([]byte, error) {
	if manga == nil {
		manga = []models.Manga{}
	}
	return shared.MarshalJSON(manga, true)
}

// WriteLibraryJSON writes an exported library to a JSON file.
func WriteLibraryJSON(manga []models.Manga, filepath string) (string, error) {
	data, err := LibraryToJSON(manga)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return filepath, nil
}

// MatchesToText converts cached matches to plain text format
func MatchesToText(matches []models.CachedMatch) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Cached matches: %d\n\n", len(matches)))
	for i, match := range matches {
		buf.WriteString(fmt.Sprintf("%d. %s -> %s (%s)\n", i+1, match.SourceTitle, match.TargetTitle, match.TargetID))
	}

	return buf.Bytes()
}

// RenderMatches writes cached matches as a table with columns: Source, Target, ID, Cached At
func RenderMatches(w io.Writer, matches []models.CachedMatch) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Source", "Target", "ID", "Cached At"})

	for _, match := range matches {
		t.AppendRow(table.Row{match.SourceTitle, match.TargetTitle, match.TargetID, match.CreatedAt.Format(time.DateTime)})
	}

	t.Render()
}
