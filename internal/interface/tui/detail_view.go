package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/pkg/tracklog"
)

func createDetailViewport(s models.Session, width, height int) viewport.Model {
	vp := viewport.New(width, height-2)
	vp.SetContent(renderSession(s))
	return vp
}

func renderSession(s models.Session) string {
	var b strings.Builder

	line := func(label, value string) {
		if value != "" {
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", label)))
			b.WriteString(value)
			b.WriteByte('\n')
		}
	}

	b.WriteString(headerStyle.Render(s.Vessel+" session") + "\n\n")
	line("When", s.Date+" "+s.Time)
	line("Location", s.Location)
	if s.Latitude != nil && s.Longitude != nil {
		line("Coordinates", fmt.Sprintf("%.4f, %.4f", *s.Latitude, *s.Longitude))
	}
	line("With", s.WhoWith)
	line("Quantity", tracklog.FormatQuantity(s.Quantity))
	line("Accessory", s.AccessoryUsed)
	line("Strain", s.StrainName)
	line("Type", s.StrainType)
	if s.THCPercent != nil {
		line("THC", fmt.Sprintf("%.1f%%", *s.THCPercent))
	}
	line("Purchased", purchaseInfo(s))

	var extras []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{s.Tobacco, "tobacco"},
		{s.Kief, "kief"},
		{s.Concentrate, "concentrate"},
		{s.Lavender, "lavender"},
	} {
		if f.set {
			extras = append(extras, f.name)
		}
	}
	line("Extras", strings.Join(extras, ", "))
	line("Comments", s.Comments)
	line("ID", s.ID)

	return b.String()
}

func purchaseInfo(s models.Session) string {
	if !s.PurchasedLegally {
		return ""
	}
	if s.StatePurchased != "" {
		return "legally, in " + s.StatePurchased
	}
	return "legally"
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.mode = listView
		return m, nil

	case "c":
		if m.current != nil {
			_ = clipboard.WriteAll(renderSession(*m.current))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) viewDetail() string {
	help := helpStyle.Render("c: copy | esc: back | q: quit")
	return m.viewport.View() + "\n" + help
}
