package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session statistics",
	Long: `Display aggregate statistics: totals, streaks, vessel and
strain breakdowns, busiest day, and monthly counts.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("Session Statistics")
	fmt.Println("==================")
	fmt.Println()

	fmt.Printf("Total Sessions:    %d\n", stats.TotalSessions)
	if stats.TotalSessions == 0 {
		return nil
	}

	fmt.Printf("Active Days:       %d\n", stats.ActiveDays)
	fmt.Printf("Current Streak:    %d day(s)\n", stats.CurrentStreak)
	fmt.Printf("Longest Streak:    %d day(s)\n", stats.LongestStreak)

	if first, err := time.Parse("2006-01-02", stats.FirstDate); err == nil {
		fmt.Printf("First Session:     %s (%s)\n", stats.FirstDate, humanize.Time(first))
	}
	if last, err := time.Parse("2006-01-02", stats.LastDate); err == nil {
		fmt.Printf("Last Session:      %s (%s)\n", stats.LastDate, humanize.Time(last))
	}
	fmt.Printf("Busiest Day:       %s (%d sessions)\n", stats.BusiestDay, stats.BusiestDayCount)

	if len(stats.VesselCounts) > 0 {
		fmt.Println("\nBy Vessel:")
		for _, vc := range stats.VesselCounts {
			fmt.Printf("  %-12s %d\n", vc.Name, vc.Count)
		}
	}
	if len(stats.TopStrains) > 0 {
		fmt.Println("\nTop Strains:")
		for _, sc := range stats.TopStrains {
			fmt.Printf("  %-20s %d\n", sc.Name, sc.Count)
		}
	}
	if len(stats.TopLocations) > 0 {
		fmt.Println("\nTop Locations:")
		for _, lc := range stats.TopLocations {
			fmt.Printf("  %-20s %d\n", lc.Name, lc.Count)
		}
	}
	if len(stats.MonthlyCounts) > 0 {
		fmt.Println("\nBy Month:")
		for _, mc := range stats.MonthlyCounts {
			fmt.Printf("  %s  %d\n", mc.Name, mc.Count)
		}
	}
	return nil
}
