package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/internal/core/storage"
)

type errMsg struct {
	err error
}

type sessionsLoadedMsg struct {
	sessions []models.Session
}

type statsLoadedMsg struct {
	stats *storage.Stats
}

func loadSessions(store storage.Store, filter storage.SessionFilter) tea.Cmd {
	return func() tea.Msg {
		sessions, err := store.ListSessions(context.Background(), filter)
		if err != nil {
			return errMsg{err}
		}
		return sessionsLoadedMsg{sessions: sessions}
	}
}

func loadStats(store storage.Store) tea.Cmd {
	return func() tea.Msg {
		stats, err := store.Stats(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return statsLoadedMsg{stats: stats}
	}
}
