package tasks

import (
	"fmt"

	"github.com/desertthunder/mdx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchSource Phase = iota
	FetchLibrary
	MatchTitles
	BuildPlan
	ExecutePlan
	ExportManga
)

func (p Phase) String() string {
	switch p {
	case FetchSource:
		return "fetch_source"
	case FetchLibrary:
		return "fetch_library"
	case MatchTitles:
		return "match_titles"
	case BuildPlan:
		return "build_plan"
	case ExecutePlan:
		return "execute_plan"
	case ExportManga:
		return "export_manga"
	default:
		return ""
	}
}

func fetchSourceUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching followed list from %s...", name),
	}
}

func fetchedSourceUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found %d followed manga", count),
	}
}

func fetchLibraryUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLibrary,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching current library from %s...", name),
	}
}

func matchTitleUpdate(step, total int, m *models.Manga) ProgressUpdate {
	if m == nil {
		return ProgressUpdate{
			Phase:   MatchTitles,
			Step:    step,
			Total:   total,
			Message: "Matching titles on destination...",
		}
	}
	return ProgressUpdate{
		Phase:   MatchTitles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, m.Title),
	}
}

func planBuiltUpdate(adds, skips int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildPlan,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Plan ready: %d to add, %d to skip", adds, skips),
	}
}

func executeUpdate(step, total int, action models.SyncAction) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExecutePlan,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Adding %s", step, total, action.Match.Manga.Title),
		Data:    action,
	}
}

func exportingUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportManga,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, title),
	}
}

func exportFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportManga,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}
