package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/blakemt/pufflog/internal/core/storage"
)

// ParseFilterQuery extracts a session filter from a token query.
// Supports:
//   - vessel:<category>
//   - strain:<substring>
//   - location:<substring>
//   - since:yesterday, since:2025-08-01
//   - until:last-week
//
// Bare tokens filter on strain.
func ParseFilterQuery(query string) storage.SessionFilter {
	filter := storage.SessionFilter{}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	var strainParts []string
	for _, token := range strings.Fields(query) {
		switch {
		case strings.HasPrefix(token, "vessel:"):
			filter.Vessel = strings.TrimPrefix(token, "vessel:")

		case strings.HasPrefix(token, "strain:"):
			filter.Strain = strings.TrimPrefix(token, "strain:")

		case strings.HasPrefix(token, "location:"):
			filter.Location = strings.TrimPrefix(token, "location:")

		case strings.HasPrefix(token, "since:"):
			if t := parseFilterDate(w, strings.TrimPrefix(token, "since:")); t != nil {
				filter.Since = *t
			}

		case strings.HasPrefix(token, "until:"):
			if t := parseFilterDate(w, strings.TrimPrefix(token, "until:")); t != nil {
				filter.Until = *t
			}

		default:
			strainParts = append(strainParts, token)
		}
	}

	if filter.Strain == "" {
		filter.Strain = strings.Join(strainParts, " ")
	}
	return filter
}

func parseFilterDate(w *when.Parser, raw string) *time.Time {
	// Dashes let multi-word phrases survive tokenization ("last-week").
	raw = strings.ReplaceAll(raw, "-", " ")

	if result, err := w.Parse(raw, time.Now()); err == nil && result != nil {
		return &result.Time
	}

	raw = strings.ReplaceAll(raw, " ", "-")
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = listView
		m.filter.Blur()
		return m, loadSessions(m.store, ParseFilterQuery(m.filter.Value()))

	case "esc":
		m.mode = listView
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m Model) viewFilter() string {
	header := headerStyle.Render("Filter sessions")
	help := helpStyle.Render("enter: apply | esc: cancel")
	return header + "\n\n" + m.filter.View() + "\n\n" + help
}
