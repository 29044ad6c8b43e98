package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blakemt/pufflog/internal/core/storage"
)

func (m Model) updateStats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.mode = listView
		return m, nil
	}
	return m, nil
}

func (m Model) viewStats() string {
	if m.stats == nil {
		return "Loading..."
	}
	s := m.stats

	var b strings.Builder
	b.WriteString(headerStyle.Render("Statistics") + "\n\n")
	fmt.Fprintf(&b, "Sessions: %d   Active days: %d\n", s.TotalSessions, s.ActiveDays)
	fmt.Fprintf(&b, "Streak: %d day(s) (longest %d)\n", s.CurrentStreak, s.LongestStreak)
	if s.FirstDate != "" {
		fmt.Fprintf(&b, "Range: %s to %s\n", s.FirstDate, s.LastDate)
	}
	if s.BusiestDay != "" {
		fmt.Fprintf(&b, "Busiest day: %s (%d)\n", s.BusiestDay, s.BusiestDayCount)
	}

	writeCounts := func(title string, counts []storage.NameCount) {
		if len(counts) == 0 {
			return
		}
		b.WriteString("\n" + labelStyle.Render(title) + "\n")
		for _, c := range counts {
			fmt.Fprintf(&b, "  %-20s %d\n", c.Name, c.Count)
		}
	}
	writeCounts("By vessel", s.VesselCounts)
	writeCounts("Top strains", s.TopStrains)
	writeCounts("Top locations", s.TopLocations)

	b.WriteString("\n" + helpStyle.Render("esc: back | q: quit"))
	return b.String()
}
