// package models defines the data model for the library sync tool
package models

import (
	"fmt"
	"time"
)

// Manga represents a followed manga from the source service.
//
// Immutable once fetched; identity is ID (the MangaDex UUID).
type Manga struct {
	ID          string
	Title       string
	AltTitles   []string
	Description string
	Authors     []string
	Status      string
	Year        int
}

// Candidate represents a destination search result considered during matching.
type Candidate struct {
	ID        string
	Title     string
	AltTitles []string
	Slug      string
}

// LibraryEntry represents an entry already present in the destination library.
type LibraryEntry struct {
	ID    string
	Title string
}

// MatchResult is the outcome of resolving one source manga against the destination catalog.
//
// TargetID is empty for unresolved manga: zero candidates, ambiguous
// candidates, or a lookup failure recorded in Err.
type MatchResult struct {
	Manga       Manga
	TargetID    string
	TargetTitle string
	FromCache   bool
	Err         error
}

// Resolved reports whether the match produced a single unambiguous target.
func (m MatchResult) Resolved() bool {
	return m.TargetID != "" && m.Err == nil
}

// ActionKind enumerates the decisions a sync plan can contain.
type ActionKind int

const (
	ActionAdd ActionKind = iota
	ActionSkip
)

func (k ActionKind) String() string {
	switch k {
	case ActionAdd:
		return "add"
	case ActionSkip:
		return "skip"
	default:
		return ""
	}
}

// Skip reasons recorded on [SyncAction].
const (
	SkipAlreadyPresent = "already-present"
	SkipUnresolved     = "unresolved"
	SkipDuplicate      = "duplicate-target"
)

// SyncAction is one planned step: add a manga to the destination library, or skip it with a reason.
type SyncAction struct {
	Kind   ActionKind
	Reason string // Empty for adds
	Match  MatchResult
}

// SyncPlan is the ordered sequence of actions for one run.
//
// Computed once and consumed once; under dry-run it is reported but never executed.
type SyncPlan struct {
	Actions []SyncAction
}

// Adds returns the planned add actions in order.
func (p SyncPlan) Adds() []SyncAction {
	var adds []SyncAction
	for _, action := range p.Actions {
		if action.Kind == ActionAdd {
			adds = append(adds, action)
		}
	}
	return adds
}

// Skips returns the planned skip actions in order.
func (p SyncPlan) Skips() []SyncAction {
	var skips []SyncAction
	for _, action := range p.Actions {
		if action.Kind == ActionSkip {
			skips = append(skips, action)
		}
	}
	return skips
}

// AddOutcome is the destination's answer to an add-to-library call.
type AddOutcome int

const (
	AddUnknown AddOutcome = iota
	AddNew
	AddAlreadyPresent
)

func (o AddOutcome) String() string {
	switch o {
	case AddNew:
		return "added"
	case AddAlreadyPresent:
		return "already-present"
	default:
		return "unknown"
	}
}

// SyncSummary carries the per-run counts and the titles needing manual follow-up.
type SyncSummary struct {
	RunID          string
	DryRun         bool
	Total          int
	Added          int
	AlreadyPresent int
	Unresolved     int
	Duplicates     int
	Failed         int

	UnresolvedTitles []string
	FailedTitles     []string
}

// CachedMatch is a persisted source → target resolution.
type CachedMatch struct {
	SourceID    string
	SourceTitle string
	TargetID    string
	TargetTitle string
	CreatedAt   time.Time
}

// Validate checks that the cached match carries both sides of the mapping.
func (m CachedMatch) Validate() error {
	if m.SourceID == "" || m.TargetID == "" {
		return fmt.Errorf("cached match requires source and target IDs")
	}
	return nil
}
