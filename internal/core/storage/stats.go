package storage

import (
	"sort"
	"time"

	"github.com/blakemt/pufflog/internal/core/models"
)

// Stats is the derived-analytics summary over the whole history. It is
// rebuilt from scratch on every call and never persisted.
type Stats struct {
	TotalSessions int
	FirstDate     string
	LastDate      string
	ActiveDays    int

	CurrentStreak int
	LongestStreak int

	VesselCounts  []NameCount
	TopLocations  []NameCount
	TopStrains    []NameCount
	MonthlyCounts []NameCount // keyed "yyyy-mm", chronological

	BusiestDay      string
	BusiestDayCount int
}

// NameCount is a generic (name, count) pair, sorted by count descending.
type NameCount struct {
	Name  string
	Count int
}

// ComputeStats aggregates session history. Both backends delegate here
// so the analytics stay identical regardless of where the rows live.
func ComputeStats(sessions []models.Session, now time.Time) *Stats {
	stats := &Stats{TotalSessions: len(sessions)}
	if len(sessions) == 0 {
		return stats
	}

	vessels := map[string]int{}
	locations := map[string]int{}
	strains := map[string]int{}
	months := map[string]int{}
	days := map[string]int{}

	for _, s := range sessions {
		vessels[s.Vessel]++
		if s.Location != "" {
			locations[s.Location]++
		}
		if s.StrainName != "" {
			strains[s.StrainName]++
		}
		if len(s.Date) >= 7 {
			months[s.Date[:7]]++
		}
		days[s.Date]++

		if stats.FirstDate == "" || s.Date < stats.FirstDate {
			stats.FirstDate = s.Date
		}
		if s.Date > stats.LastDate {
			stats.LastDate = s.Date
		}
	}

	stats.ActiveDays = len(days)
	stats.VesselCounts = rankCounts(vessels, 0)
	stats.TopLocations = rankCounts(locations, 5)
	stats.TopStrains = rankCounts(strains, 5)

	monthly := rankCounts(months, 0)
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Name < monthly[j].Name })
	stats.MonthlyCounts = monthly

	for day, n := range days {
		if n > stats.BusiestDayCount || (n == stats.BusiestDayCount && day < stats.BusiestDay) {
			stats.BusiestDay = day
			stats.BusiestDayCount = n
		}
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	stats.CurrentStreak, stats.LongestStreak = ComputeStreaks(dates, now)

	return stats
}

// ComputeStreaks returns the current and longest runs of consecutive
// active days. The current streak counts back from today, or from
// yesterday if today has no session yet.
func ComputeStreaks(dates []string, now time.Time) (current, longest int) {
	if len(dates) == 0 {
		return 0, 0
	}

	sorted := append([]string(nil), dates...)
	sort.Strings(sorted)

	parsed := make([]time.Time, 0, len(sorted))
	for _, d := range sorted {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if len(parsed) > 0 && parsed[len(parsed)-1].Equal(t) {
			continue
		}
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return 0, 0
	}

	run := 1
	longest = 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i].Sub(parsed[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	last := parsed[len(parsed)-1].Format("2006-01-02")
	if last == today || last == yesterday {
		current = run
	}
	return current, longest
}

func rankCounts(m map[string]int, limit int) []NameCount {
	out := make([]NameCount, 0, len(m))
	for name, n := range m {
		out = append(out, NameCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
