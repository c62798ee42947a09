package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mdx/internal/library"
	"github.com/desertthunder/mdx/internal/shared"
)

// ViewState represents the current view in the viewer.
type ViewState int

const (
	EntryListView ViewState = iota
	DetailView
)

// Model represents the viewer application state.
type Model struct {
	view      ViewState
	lib       *library.Library
	width     int
	height    int
	entryList list.Model
	selected  *library.Entry
	loadErr   error
	openErr   error
	help      help.Model
	keys      keyMap
}

// NewModel creates a viewer model over a loaded library.
func NewModel(lib *library.Library) *Model {
	items := make([]list.Item, 0, lib.Len())
	for _, entry := range lib.Entries() {
		items = append(items, entryItem{entry: entry})
	}

	entryList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	entryList.Title = "Library"

	return &Model{
		view:      EntryListView,
		lib:       lib,
		entryList: entryList,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// NewErrorModel creates a viewer model that only reports a load failure.
func NewErrorModel(err error) *Model {
	return &Model{
		loadErr: err,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.entryList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if m.loadErr != nil {
			return m, tea.Quit
		}
		switch m.view {
		case EntryListView:
			return m.handleEntryListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}
	}

	if m.view == EntryListView {
		var cmd tea.Cmd
		m.entryList, cmd = m.entryList.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.loadErr != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress any key to quit", m.loadErr))
	}

	switch m.view {
	case EntryListView:
		return m.renderEntryList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleEntryListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.entryList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(entryItem); ok {
				entry := item.entry
				m.selected = &entry
				m.openErr = nil
				m.view = DetailView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.entryList, cmd = m.entryList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = EntryListView
		m.selected = nil
		return m, nil
	case "o":
		if m.selected != nil && m.selected.ID != "" {
			m.openErr = shared.OpenBrowser("https://mangadex.org/title/" + m.selected.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) renderEntryList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.entryList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No entry selected\n\nPress esc to go back")
	}

	title := styles.title.Render(m.selected.Title)

	var info strings.Builder
	if len(m.selected.Authors) > 0 {
		info.WriteString(fmt.Sprintf("Authors: %s\n", strings.Join(m.selected.Authors, ", ")))
	}
	if m.selected.Status != "" {
		info.WriteString(fmt.Sprintf("Status: %s\n", m.selected.Status))
	}
	if m.selected.Year > 0 {
		info.WriteString(fmt.Sprintf("Year: %d\n", m.selected.Year))
	}

	desc := m.lib.Select(m.selected.Title)
	if desc == "" {
		desc = styles.help.Render("(no description)")
	}

	var warn string
	if m.openErr != nil {
		warn = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Could not open browser: %v", m.openErr)))
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.open, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s%s\n\n%s", title, info.String(), desc, warn, helpView)
}
