package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cbroglie/mustache"
	"github.com/spf13/cobra"

	"github.com/blakemt/pufflog/internal/core/geocode"
	"github.com/blakemt/pufflog/internal/core/importer"
	"github.com/blakemt/pufflog/pkg/tracklog"
)

var (
	importDryRun  bool
	importGeocode bool
	importYes     bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a historical export (CSV/TSV)",
	Long: `Import sessions from a historical spreadsheet export.

The file may be tab or comma separated; the delimiter is detected from
the header line. Use --dry-run to see how rows would be transformed
without writing anything.

Examples:
  pufflog import sessions.tsv --dry-run
  pufflog import sessions.tsv --geocode
  pufflog import sessions.csv --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and show sample transformations without writing")
	importCmd.Flags().BoolVar(&importGeocode, "geocode", false, "Resolve location coordinates during import")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip the confirmation countdown")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	opts := importer.Options{Progress: os.Stdout}
	if importGeocode {
		var clientOpts []geocode.Option
		if cfg.GeocoderURL != "" {
			clientOpts = append(clientOpts, geocode.WithBaseURL(cfg.GeocoderURL))
		}
		opts.Geocoder = geocode.NewCache(geocode.NewClient(clientOpts...))
	}
	imp := importer.New(store, opts)

	if importDryRun {
		return runValidate(imp, path)
	}

	if !importYes {
		fmt.Printf("Importing %s into %s in ", path, dbPath)
		for i := 3; i > 0; i-- {
			fmt.Printf("%d... ", i)
			time.Sleep(time.Second)
		}
		fmt.Println()
	}

	stats, err := imp.Commit(context.Background(), path)
	if err != nil {
		return err
	}

	for _, rowErr := range stats.Errors {
		fmt.Printf("  row %d: %s\n", rowErr.Row, rowErr.Message)
	}

	report, err := mustache.Render(cfg.ReportTemplate, map[string]interface{}{
		"source":         stats.SourceFile,
		"total":          stats.TotalRows,
		"inserted":       stats.Inserted,
		"failed":         stats.Failed,
		"geocoded":       stats.Geocoded,
		"geocode_failed": stats.GeocodeFailed,
		"vessels":        joinVessels(stats.VesselsFound),
	})
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	fmt.Println(report)
	return nil
}

func runValidate(imp *importer.Importer, path string) error {
	report, err := imp.Validate(path)
	if err != nil {
		return err
	}

	if report.Valid {
		fmt.Println("File looks importable.")
	} else {
		fmt.Println("File has problems:")
		for _, issue := range report.Issues {
			fmt.Printf("  - %s\n", issue)
		}
	}

	if len(report.Samples) > 0 {
		fmt.Println("\nSample transformations:")
		for _, sample := range report.Samples {
			s := sample.Transformed
			fmt.Printf("  %s %s  %-10s %-20s %s\n",
				s.Date, s.Time, s.Vessel, s.StrainName, tracklog.FormatQuantity(s.Quantity))
		}
	}
	if len(report.VesselsFound) > 0 {
		fmt.Printf("\nVessels found: %s\n", joinVessels(report.VesselsFound))
	}
	return nil
}

func joinVessels(vessels []string) string {
	return strings.Join(vessels, ", ")
}
