// package tasks implements the followed-list sync between cataloging services.
//
// The core abstraction is LibraryEngine, which fetches the source's followed
// list, resolves each title against the destination catalog, computes an
// add/skip plan against the destination library, and executes it unless the
// run is a dry-run. Operations emit progress updates via channels for
// non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/mdx/internal/models"
	"github.com/desertthunder/mdx/internal/services"
	"github.com/desertthunder/mdx/internal/shared"
)

// MatchCache persists resolved source → target matches between runs.
//
// Lookups happen before any destination search; stores happen on every fresh
// resolution. Cache failures are swallowed so persistence problems never
// disturb a sync.
type MatchCache interface {
	Lookup(sourceID string) (*models.CachedMatch, error)
	Store(match models.CachedMatch) error
}

// RunOpts contains per-run settings for the sync pipeline.
type RunOpts struct {
	DryRun      bool // Compute and report the plan without issuing add calls
	SearchLimit int  // Candidates requested per destination search
}

// RunResult contains all data from one sync run.
type RunResult struct {
	Matches []models.MatchResult // Per-manga match outcomes, in fetch order
	Plan    models.SyncPlan      // The computed add/skip plan
	Summary models.SyncSummary   // Final counts and follow-up titles
}

// LibraryEngine orchestrates the sync between a source and a destination service.
type LibraryEngine struct {
	source services.Source
	dest   services.Destination
	cache  MatchCache
}

// NewLibraryEngine creates a new LibraryEngine with the provided services.
// The cache may be nil, disabling match persistence.
func NewLibraryEngine(source services.Source, dest services.Destination, cache MatchCache) *LibraryEngine {
	return &LibraryEngine{
		source: source,
		dest:   dest,
		cache:  cache,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run performs a full source → destination library sync.
//
// Fetch failures abort the run; match and add failures are collected per
// item and reported in the summary. A 401 from the destination mid-batch
// aborts, since nothing further can succeed without authentication.
func (e *LibraryEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, opts RunOpts) (*RunResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: source service not initialized", shared.ErrServiceUnavailable)
	}
	if e.dest == nil {
		return nil, fmt.Errorf("%w: destination service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchSourceUpdate(1, 2, e.source.Name()))

	manga, err := e.source.FollowedManga(ctx)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, fetchedSourceUpdate(1, 2, len(manga)))

	e.sendProgress(progress, fetchLibraryUpdate(2, 2, e.dest.Name()))
	library, err := e.dest.Library(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch destination library: %v", shared.ErrFetchFailed, err)
	}

	present := make(map[string]models.LibraryEntry, len(library))
	for _, entry := range library {
		present[entry.ID] = entry
	}

	matches := e.matchAll(ctx, progress, manga, opts.SearchLimit)
	plan := buildPlan(matches, present)
	e.sendProgress(progress, planBuiltUpdate(len(plan.Adds()), len(plan.Skips())))

	result := &RunResult{
		Matches: matches,
		Plan:    plan,
	}

	summary, err := e.execute(ctx, progress, plan, opts.DryRun)
	result.Summary = summary
	if err != nil {
		return result, err
	}

	return result, nil
}

// matchAll resolves every source manga against the destination catalog.
//
// One bad item never halts the batch: lookup failures are recorded on the
// item's MatchResult and matching continues.
func (e *LibraryEngine) matchAll(ctx context.Context, progress chan<- ProgressUpdate, manga []models.Manga, searchLimit int) []models.MatchResult {
	e.sendProgress(progress, matchTitleUpdate(0, len(manga), nil))

	matches := make([]models.MatchResult, len(manga))
	for i, m := range manga {
		e.sendProgress(progress, matchTitleUpdate(i+1, len(manga), &m))
		matches[i] = e.matchOne(ctx, m, searchLimit)
	}

	return matches
}

// matchOne resolves a single manga: cache first, then a destination search.
func (e *LibraryEngine) matchOne(ctx context.Context, m models.Manga, searchLimit int) models.MatchResult {
	result := models.MatchResult{Manga: m}

	if e.cache != nil {
		if cached, err := e.cache.Lookup(m.ID); err == nil && cached != nil {
			result.TargetID = cached.TargetID
			result.TargetTitle = cached.TargetTitle
			result.FromCache = true
			return result
		}
	}

	candidates, err := e.dest.Search(ctx, m.Title, searchLimit)
	if err != nil {
		result.Err = fmt.Errorf("%w: %s: %v", shared.ErrMatchFailed, m.Title, err)
		return result
	}

	target := selectCandidate(m, candidates)
	if target == nil {
		return result
	}

	result.TargetID = target.ID
	result.TargetTitle = target.Title

	if e.cache != nil {
		// Best effort; a broken cache must not disturb the run.
		_ = e.cache.Store(models.CachedMatch{
			SourceID:    m.ID,
			SourceTitle: m.Title,
			TargetID:    target.ID,
			TargetTitle: target.Title,
		})
	}

	return result
}

// selectCandidate applies the match policy: an exact title match wins when
// exactly one candidate has it, then a normalized comparison is tried.
// Zero or multiple survivors mean unresolved; ambiguity is never guessed.
func selectCandidate(m models.Manga, candidates []models.Candidate) *models.Candidate {
	if len(candidates) == 0 {
		return nil
	}

	sourceTitles := append([]string{m.Title}, m.AltTitles...)

	if match := uniqueMatch(sourceTitles, candidates, func(s string) string { return s }); match != nil {
		return match
	}

	return uniqueMatch(sourceTitles, candidates, shared.NormalizeTitle)
}

// uniqueMatch returns the single candidate sharing a title with the source
// under the given key function, or nil when there are zero or several.
func uniqueMatch(sourceTitles []string, candidates []models.Candidate, key func(string) string) *models.Candidate {
	wanted := make(map[string]struct{}, len(sourceTitles))
	for _, title := range sourceTitles {
		if title != "" {
			wanted[key(title)] = struct{}{}
		}
	}

	var found *models.Candidate
	for i := range candidates {
		candidate := candidates[i]
		titles := append([]string{candidate.Title}, candidate.AltTitles...)

		matched := false
		for _, title := range titles {
			if _, ok := wanted[key(title)]; ok {
				matched = true
				break
			}
		}

		if !matched {
			continue
		}
		if found != nil {
			return nil // ambiguous
		}
		found = &candidate
	}

	return found
}

// buildPlan turns match results into an ordered add/skip plan.
//
// First-match-wins: once a target ID is planned for addition, any later
// source manga resolving to the same target becomes a duplicate skip. The
// plan is deterministic because matches arrive in fetch order.
func buildPlan(matches []models.MatchResult, present map[string]models.LibraryEntry) models.SyncPlan {
	plan := models.SyncPlan{Actions: make([]models.SyncAction, 0, len(matches))}
	planned := make(map[string]struct{})

	for _, match := range matches {
		action := models.SyncAction{Match: match}

		switch {
		case !match.Resolved():
			action.Kind = models.ActionSkip
			action.Reason = models.SkipUnresolved
		case hasEntry(present, match.TargetID):
			action.Kind = models.ActionSkip
			action.Reason = models.SkipAlreadyPresent
		case hasKey(planned, match.TargetID):
			action.Kind = models.ActionSkip
			action.Reason = models.SkipDuplicate
		default:
			action.Kind = models.ActionAdd
			planned[match.TargetID] = struct{}{}
		}

		plan.Actions = append(plan.Actions, action)
	}

	return plan
}

func hasEntry(m map[string]models.LibraryEntry, key string) bool {
	_, ok := m[key]
	return ok
}

func hasKey(m map[string]struct{}, key string) bool {
	_, ok := m[key]
	return ok
}

// execute walks the plan and issues add calls, or only tallies under dry-run.
//
// Individual add failures are collected; authentication loss aborts.
func (e *LibraryEngine) execute(ctx context.Context, progress chan<- ProgressUpdate, plan models.SyncPlan, dryRun bool) (models.SyncSummary, error) {
	summary := models.SyncSummary{
		RunID:  shared.GenerateID(),
		DryRun: dryRun,
		Total:  len(plan.Actions),
	}

	for _, action := range plan.Skips() {
		switch action.Reason {
		case models.SkipAlreadyPresent:
			summary.AlreadyPresent++
		case models.SkipDuplicate:
			summary.Duplicates++
		case models.SkipUnresolved:
			summary.Unresolved++
			summary.UnresolvedTitles = append(summary.UnresolvedTitles, action.Match.Manga.Title)
		}
	}

	adds := plan.Adds()
	if dryRun {
		summary.Added = len(adds)
		return summary, nil
	}

	for i, action := range adds {
		e.sendProgress(progress, executeUpdate(i+1, len(adds), action))

		outcome, err := e.dest.AddToLibrary(ctx, action.Match.TargetID)
		if err != nil {
			if errors.Is(err, shared.ErrNotAuthenticated) {
				return summary, fmt.Errorf("%w: destination session lost mid-run", shared.ErrNotAuthenticated)
			}
			summary.Failed++
			summary.FailedTitles = append(summary.FailedTitles, action.Match.Manga.Title)
			continue
		}

		switch outcome {
		case models.AddAlreadyPresent:
			summary.AlreadyPresent++
		default:
			summary.Added++
		}
	}

	return summary, nil
}
