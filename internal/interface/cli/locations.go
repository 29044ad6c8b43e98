package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blakemt/pufflog/internal/core/geocode"
	"github.com/blakemt/pufflog/internal/core/locations"
	"github.com/blakemt/pufflog/internal/core/models"
)

var locationsGeocode bool

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List known locations",
	Long: `List deduplicated locations with usage counts.

With --geocode, resolves coordinates for locations that are missing
them, pausing between lookups to respect the provider's rate limit.`,
	RunE: runLocations,
}

func init() {
	rootCmd.AddCommand(locationsCmd)
	locationsCmd.Flags().BoolVar(&locationsGeocode, "geocode", false, "Backfill missing coordinates")
}

func runLocations(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	if locationsGeocode {
		var clientOpts []geocode.Option
		if cfg.GeocoderURL != "" {
			clientOpts = append(clientOpts, geocode.WithBaseURL(cfg.GeocoderURL))
		}
		geo := geocode.NewCache(geocode.NewClient(clientOpts...))
		resolver := locations.NewResolver(store, geo)

		updated, err := resolver.Backfill(ctx, cfg.GeocodeDelay)
		if err != nil {
			return err
		}
		fmt.Printf("Geocoded %d location(s), %d lookup(s) failed\n\n", updated, resolver.Failed)
	}

	locs, err := store.ListLocations(ctx)
	if err != nil {
		return err
	}
	if len(locs) == 0 {
		fmt.Println("No locations recorded")
		return nil
	}

	for _, l := range locs {
		line := fmt.Sprintf("%-25s %3d session(s)", models.DisplayName(l.Name, l.City, l.State), l.UsageCount)
		if l.HasCoordinates() {
			line += fmt.Sprintf("  (%.4f, %.4f)", *l.Latitude, *l.Longitude)
		}
		fmt.Println(line)
	}
	return nil
}
