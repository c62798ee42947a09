package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mdx/internal/library"
)

var _ list.Item = entryItem{}

// entryItem wraps [library.Entry] to implement [list.Item].
type entryItem struct {
	entry library.Entry
}

func (i entryItem) FilterValue() string { return i.entry.Title }
func (i entryItem) Title() string       { return i.entry.Title }
func (i entryItem) Description() string {
	var parts []string
	if len(i.entry.Authors) > 0 {
		parts = append(parts, strings.Join(i.entry.Authors, ", "))
	}
	if i.entry.Status != "" {
		parts = append(parts, i.entry.Status)
	}
	if i.entry.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d", i.entry.Year))
	}
	if len(parts) == 0 {
		return "no details"
	}
	return strings.Join(parts, " • ")
}
