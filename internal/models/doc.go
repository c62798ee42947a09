// Package models defines domain entities for the mdx library sync tool.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing external service data
//   - [Manga] : A followed manga from the source service, identified by its source UUID
//   - [Candidate] : A destination search result considered during matching
//   - [LibraryEntry] : An entry already present in the destination library
//
// 2. Sync pipeline results:
//   - [MatchResult] : Outcome of resolving one source manga against the destination
//   - [SyncPlan] / [SyncAction] : The ordered add/skip decisions for one run
//   - [SyncSummary] : Final per-run counts and follow-up title lists
//   - [CachedMatch] : A persisted source → target resolution for the match cache
package models
