// Package tasks orchestrates the followed-list sync with real-time progress reporting.
//
// # Core Operations
//
// [LibraryEngine.Run] performs the full MangaDex → ComicK sync:
//   - Fetches the followed list from the source (aborts on any page failure)
//   - Fetches the destination library once
//   - Resolves each title against the destination catalog (cache, then search)
//   - Builds an ordered add/skip [models.SyncPlan]: first-match-wins on
//     duplicate targets, already-present entries become skips
//   - Executes the plan unless dry-run, collecting per-item add failures
//
// [LibraryEngine.Export] produces the viewer's library JSON: the followed
// list enriched per-manga through a rate-limited worker pool.
//
// # Progress Reporting
//
// All operations emit [ProgressUpdate] values over a caller-owned channel.
// Sends use select with default so a slow consumer never blocks the run.
//
// # Match Caching
//
// The optional [MatchCache] interface persists resolutions between runs.
// Cache reads replace destination searches on hits; cache write errors are
// ignored so persistence problems cannot disturb a sync.
//
// # Failure Semantics
//
// Authentication and fetch failures abort a run. Match and add failures are
// per-item: they are collected into the [models.SyncSummary] and never halt
// the batch. The only mid-batch abort is a destination 401, because every
// remaining call would fail the same way.
package tasks
