package storage

import (
	"testing"
	"time"

	"github.com/blakemt/pufflog/internal/core/models"
)

func TestComputeStreaks(t *testing.T) {
	now := time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		dates       []string
		wantCurrent int
		wantLongest int
	}{
		{"empty", nil, 0, 0},
		{"single today", []string{"2026-01-10"}, 1, 1},
		{"run ending today", []string{"2026-01-08", "2026-01-09", "2026-01-10"}, 3, 3},
		{"run ending yesterday", []string{"2026-01-07", "2026-01-08", "2026-01-09"}, 3, 3},
		{"broken streak", []string{"2026-01-05", "2026-01-06", "2026-01-10"}, 1, 2},
		{"stale history", []string{"2025-12-01", "2025-12-02"}, 0, 2},
		{"duplicates collapse", []string{"2026-01-09", "2026-01-09", "2026-01-10"}, 2, 2},
	}
	for _, tt := range tests {
		current, longest := ComputeStreaks(tt.dates, now)
		if current != tt.wantCurrent || longest != tt.wantLongest {
			t.Errorf("%s: ComputeStreaks() = (%d, %d), want (%d, %d)",
				tt.name, current, longest, tt.wantCurrent, tt.wantLongest)
		}
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2022, 10, 18, 12, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		{Date: "2022-10-16", Vessel: "Bong", Location: "Home", StrainName: "Blue Dream"},
		{Date: "2022-10-17", Vessel: "Bong", Location: "Home", StrainName: "Blue Dream"},
		{Date: "2022-10-17", Vessel: "Joint", Location: "Park", StrainName: "Gelato"},
		{Date: "2022-09-01", Vessel: "Pen", Location: "Home", StrainName: "Gelato"},
	}

	stats := ComputeStats(sessions, now)

	if stats.TotalSessions != 4 {
		t.Errorf("TotalSessions = %d", stats.TotalSessions)
	}
	if stats.FirstDate != "2022-09-01" || stats.LastDate != "2022-10-17" {
		t.Errorf("date range = %s..%s", stats.FirstDate, stats.LastDate)
	}
	if stats.ActiveDays != 3 {
		t.Errorf("ActiveDays = %d", stats.ActiveDays)
	}
	if stats.BusiestDay != "2022-10-17" || stats.BusiestDayCount != 2 {
		t.Errorf("busiest day = %s (%d)", stats.BusiestDay, stats.BusiestDayCount)
	}
	if len(stats.VesselCounts) == 0 || stats.VesselCounts[0].Name != "Bong" || stats.VesselCounts[0].Count != 2 {
		t.Errorf("VesselCounts = %+v", stats.VesselCounts)
	}
	if stats.CurrentStreak != 2 || stats.LongestStreak != 2 {
		t.Errorf("streaks = (%d, %d)", stats.CurrentStreak, stats.LongestStreak)
	}
	if len(stats.MonthlyCounts) != 2 || stats.MonthlyCounts[0].Name != "2022-09" {
		t.Errorf("MonthlyCounts = %+v", stats.MonthlyCounts)
	}
	if stats.TopLocations[0].Name != "Home" || stats.TopLocations[0].Count != 3 {
		t.Errorf("TopLocations = %+v", stats.TopLocations)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, time.Now())
	if stats.TotalSessions != 0 || stats.CurrentStreak != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
}
