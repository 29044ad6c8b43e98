// Package tui is the interactive session browser.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/internal/core/storage"
)

type viewMode int

const (
	listView viewMode = iota
	detailView
	filterView
	statsView
)

type Model struct {
	store    storage.Store
	mode     viewMode
	list     list.Model
	viewport viewport.Model
	filter   textinput.Model
	width    int
	height   int
	err      error

	sessions []models.Session
	current  *models.Session
	stats    *storage.Stats
}

func New(store storage.Store) Model {
	filter := textinput.New()
	filter.Placeholder = "vessel:bong strain:gelato since:yesterday"

	return Model{
		store:  store,
		mode:   listView,
		filter: filter,
	}
}

// Run starts the browser and blocks until it exits.
func Run(store storage.Store) error {
	p := tea.NewProgram(New(store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		return err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return loadSessions(m.store, storage.SessionFilter{})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list = createSessionList(m.sessions, m.width, m.height)
		return m, nil

	case tea.KeyMsg:
		if m.mode == filterView {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.mode == listView {
				return m, tea.Quit
			}
			m.mode = listView
			return m, nil
		}

		switch m.mode {
		case listView:
			return m.updateList(msg)
		case detailView:
			return m.updateDetail(msg)
		case statsView:
			return m.updateStats(msg)
		}

	case sessionsLoadedMsg:
		m.sessions = msg.sessions
		m.list = createSessionList(msg.sessions, m.width, m.height)
		return m, nil

	case statsLoadedMsg:
		m.stats = msg.stats
		m.mode = statsView
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit"
	}

	switch m.mode {
	case listView:
		return m.viewList()
	case detailView:
		return m.viewDetail()
	case filterView:
		return m.viewFilter()
	case statsView:
		return m.viewStats()
	}

	return ""
}
