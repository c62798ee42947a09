// Package ui implements an interactive library viewer using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow over an exported library file:
//  1. [EntryListView] : Browse and select manga titles
//  2. [DetailView] : Read the description and metadata of a selection
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// From the detail view, pressing o opens the manga's MangaDex page in the default browser.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, o, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
