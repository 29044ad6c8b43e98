package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blakemt/pufflog/internal/core/storage"
	"github.com/blakemt/pufflog/pkg/tracklog"
)

var (
	listVessel   string
	listStrain   string
	listLocation string
	listSince    string
	listUntil    string
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	Long: `List sessions, newest first.

Date flags accept natural language ("yesterday", "last week") or plain
dates ("2025-08-01").

Examples:
  pufflog list --vessel bong --limit 10
  pufflog list --strain "blue dream" --since "last month"
  pufflog list --location home`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listVessel, "vessel", "", "Filter by vessel category")
	listCmd.Flags().StringVar(&listStrain, "strain", "", "Filter by strain substring")
	listCmd.Flags().StringVar(&listLocation, "location", "", "Filter by location substring")
	listCmd.Flags().StringVar(&listSince, "since", "", "Only sessions on or after this date")
	listCmd.Flags().StringVar(&listUntil, "until", "", "Only sessions on or before this date")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 25, "Max sessions to show (0 for all)")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	filter := storage.SessionFilter{
		Vessel:   listVessel,
		Strain:   listStrain,
		Location: listLocation,
		Limit:    listLimit,
	}
	if listSince != "" {
		t, err := parseDateArg(listSince)
		if err != nil {
			return err
		}
		filter.Since = t
	}
	if listUntil != "" {
		t, err := parseDateArg(listUntil)
		if err != nil {
			return err
		}
		filter.Until = t
	}

	sessions, err := store.ListSessions(context.Background(), filter)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	for _, s := range sessions {
		when := s.Date + " " + s.Time
		if t, err := time.Parse("2006-01-02 15:04", when); err == nil {
			when = fmt.Sprintf("%s (%s)", when, humanize.Time(t))
		}
		line := fmt.Sprintf("%s  %-10s %s", when, s.Vessel, tracklog.FormatQuantity(s.Quantity))
		if s.StrainName != "" {
			line += "  " + s.StrainName
		}
		if s.Location != "" {
			line += "  @ " + s.Location
		}
		fmt.Println(line)
	}
	return nil
}
