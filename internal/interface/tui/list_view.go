package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/internal/core/storage"
	"github.com/blakemt/pufflog/pkg/tracklog"
)

type sessionListItem struct {
	session models.Session
}

func (i sessionListItem) FilterValue() string {
	return i.session.StrainName + " " + i.session.Vessel + " " + i.session.Location
}

func (i sessionListItem) Title() string {
	title := i.session.Vessel
	if i.session.StrainName != "" {
		title += " - " + i.session.StrainName
	}
	return title
}

func (i sessionListItem) Description() string {
	desc := fmt.Sprintf("%s %s | %s",
		i.session.Date, i.session.Time, tracklog.FormatQuantity(i.session.Quantity))
	if i.session.Location != "" {
		desc += " | " + i.session.Location
	}
	if t, err := time.Parse("2006-01-02 15:04", i.session.Date+" "+i.session.Time); err == nil {
		desc += " | " + humanize.Time(t)
	}
	return desc
}

type sessionDelegate struct {
	list.DefaultDelegate
}

func (d sessionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	s, ok := item.(sessionListItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	title := s.Title()
	desc := s.Description()

	if index == m.Index() {
		title = selectedItemStyle.Render(title)
		desc = selectedItemStyle.Faint(true).Render(desc)
	} else {
		title = itemStyle.Render(title)
		desc = itemStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

func createSessionList(sessions []models.Session, width, height int) list.Model {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionListItem{session: s}
	}

	delegate := sessionDelegate{DefaultDelegate: list.NewDefaultDelegate()}

	l := list.New(items, delegate, width, height-1)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false) // dedicated filter view on /

	return l
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if selected, ok := m.list.SelectedItem().(sessionListItem); ok {
			s := selected.session
			m.current = &s
			m.viewport = createDetailViewport(s, m.width, m.height)
			m.mode = detailView
		}
		return m, nil

	case "/":
		m.mode = filterView
		m.filter.Focus()
		return m, nil

	case "s":
		return m, loadStats(m.store)

	case "r":
		return m, loadSessions(m.store, storage.SessionFilter{})
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) viewList() string {
	help := helpStyle.Render("enter: detail | /: filter | s: stats | r: reload | q: quit")
	return m.list.View() + "\n" + help
}
