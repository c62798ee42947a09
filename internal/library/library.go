// package library loads exported manga libraries from JSON files for offline
// browsing.
//
// A library file is a JSON array of entries, typically produced by the export
// pipeline. Entry order is preserved as it appears in the file.
package library

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/mdx/internal/shared"
)

// Entry is a single manga in a library file.
type Entry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Status      string   `json:"status,omitempty"`
	Year        int      `json:"year,omitempty"`
}

// Library is an ordered collection of entries loaded from a file.
type Library struct {
	entries []Entry
}

// Load reads and parses a library file.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrLoadFailed, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrLoadFailed, err)
	}

	return &Library{entries: entries}, nil
}

// Titles returns all entry titles in file order.
func (l *Library) Titles() []string {
	titles := make([]string, 0, len(l.entries))
	for _, entry := range l.entries {
		titles = append(titles, entry.Title)
	}
	return titles
}

// Select returns the description of the entry with the given title, or the
// string "not found." when no entry matches. Entries without a description
// yield an empty string.
func (l *Library) Select(title string) string {
	for _, entry := range l.entries {
		if entry.Title == title {
			return entry.Description
		}
	}
	return "not found."
}

// Get returns the entry with the given title.
func (l *Library) Get(title string) (Entry, bool) {
	for _, entry := range l.entries {
		if entry.Title == title {
			return entry, true
		}
	}
	return Entry{}, false
}

// Entries returns all entries in file order.
func (l *Library) Entries() []Entry {
	return l.entries
}

// Len returns the number of entries.
func (l *Library) Len() int {
	return len(l.entries)
}
