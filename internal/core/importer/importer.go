// Package importer runs the historical export ingestion pipeline:
// parse, transform, resolve locations, persist, with per-row error
// isolation.
package importer

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/blakemt/pufflog/internal/core/geocode"
	"github.com/blakemt/pufflog/internal/core/locations"
	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/internal/core/storage"
	"github.com/blakemt/pufflog/pkg/tracklog"
)

// validationSampleSize bounds how many rows a dry run transforms.
const validationSampleSize = 5

// identifierPrefix matches the id column, whose exact title varied
// across exports ("Instance (Blake Tracking)" and friends).
const identifierPrefix = "instance"

// requiredColumns must be present for validation to pass. The
// identifier column is checked separately by prefix.
var requiredColumns = []string{
	tracklog.ColWhen,
	tracklog.ColLocation,
	tracklog.ColVessel,
	tracklog.ColStrain,
	tracklog.ColQuantity,
}

// RowError is one isolated row failure.
type RowError struct {
	Row     int // 1-based data row number, 0 for run-level failures
	Message string
	Raw     string
}

// MigrationStats summarizes one commit run.
type MigrationStats struct {
	SourceFile    string
	TotalRows     int
	Inserted      int
	Failed        int
	Errors        []RowError
	Geocoded      int
	GeocodeFailed int
	VesselsFound  []string
}

// Status classifies the run for the import log.
func (s *MigrationStats) Status() string {
	switch {
	case s.Inserted == 0:
		return "failed"
	case s.Failed > 0:
		return "partial"
	default:
		return "success"
	}
}

// SampleTransformation pairs a raw row with its normalized form so a
// dry run can be eyeballed before committing.
type SampleTransformation struct {
	Original    string
	Transformed *models.Session
}

// ValidationReport is the outcome of a dry run. No storage or
// geocoding happens while producing it.
type ValidationReport struct {
	Valid        bool
	Issues       []string
	Samples      []SampleTransformation
	VesselsFound []string
}

// Options configures an import run.
type Options struct {
	// Geocoder resolves coordinates during commit. Nil disables
	// geocoding; locations are still deduplicated.
	Geocoder geocode.Geocoder

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time

	// Progress, when set, receives a progress bar during commit runs.
	Progress io.Writer
}

// Importer ingests historical export files into a store.
type Importer struct {
	store storage.Store
	opts  Options
}

// New creates an importer.
func New(store storage.Store, opts Options) *Importer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Importer{store: store, opts: opts}
}

// Validate parses the file and transforms a bounded sample without
// touching storage or the geocoder.
func (i *Importer) Validate(path string) (*ValidationReport, error) {
	report := &ValidationReport{Valid: true}

	table, err := tracklog.ParseFile(path)
	if err != nil {
		report.Valid = false
		report.Issues = append(report.Issues, fmt.Sprintf("cannot parse %s: %v", path, err))
		return report, nil
	}

	if !table.HasColumnPrefix(identifierPrefix) {
		report.Valid = false
		report.Issues = append(report.Issues, "missing identifier column")
	}
	for _, col := range requiredColumns {
		if !table.HasColumn(col) {
			report.Valid = false
			report.Issues = append(report.Issues, fmt.Sprintf("missing required column %q", col))
		}
	}

	vessels := make(map[string]bool)
	for _, row := range table.Rows {
		if len(report.Samples) >= validationSampleSize {
			break
		}
		s, err := i.transformRow(table, row)
		if err != nil {
			report.Valid = false
			report.Issues = append(report.Issues, fmt.Sprintf("row %d: %v", row.Num, err))
			continue
		}
		vessels[s.Vessel] = true
		report.Samples = append(report.Samples, SampleTransformation{
			Original:    strings.Join(row.Cells, string(table.Separator)),
			Transformed: s,
		})
	}

	report.VesselsFound = sortedKeys(vessels)
	return report, nil
}

// Commit ingests the whole file. Row failures are recorded and skipped;
// only an unreadable file is fatal, reported as a single synthetic
// error with zero processed rows.
func (i *Importer) Commit(ctx context.Context, path string) (*MigrationStats, error) {
	stats := &MigrationStats{SourceFile: path}

	table, err := tracklog.ParseFile(path)
	if err != nil {
		stats.Errors = append(stats.Errors, RowError{Row: 0, Message: err.Error(), Raw: path})
		stats.Failed = 1
		return stats, fmt.Errorf("cannot parse %s: %w", path, err)
	}

	resolver := locations.NewResolver(i.store, i.opts.Geocoder)
	vessels := make(map[string]bool)
	stats.TotalRows = len(table.Rows)

	var progress *ProgressReporter
	if i.opts.Progress != nil {
		progress = NewProgressReporter(i.opts.Progress, stats.TotalRows)
	}

	for _, row := range table.Rows {
		raw := strings.Join(row.Cells, string(table.Separator))
		if progress != nil {
			progress.Update(table.Get(row, tracklog.ColStrain))
		}

		s, err := i.transformRow(table, row)
		if err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, RowError{Row: row.Num, Message: err.Error(), Raw: raw})
			continue
		}

		loc, err := resolver.Resolve(ctx,
			table.Get(row, tracklog.ColLocation),
			table.Get(row, tracklog.ColCity),
			table.Get(row, tracklog.ColState))
		if err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, RowError{Row: row.Num, Message: err.Error(), Raw: raw})
			continue
		}
		if loc != nil && loc.HasCoordinates() {
			s.Latitude, s.Longitude = loc.Latitude, loc.Longitude
		}

		if err := i.store.SaveSession(ctx, s); err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, RowError{Row: row.Num, Message: err.Error(), Raw: raw})
			continue
		}

		stats.Inserted++
		vessels[s.Vessel] = true
	}

	if progress != nil {
		progress.Finish(stats.Inserted)
	}

	stats.Geocoded = resolver.Geocoded
	stats.GeocodeFailed = resolver.Failed
	stats.VesselsFound = sortedKeys(vessels)

	rec := storage.ImportRecord{
		SourceFile: path,
		TotalRows:  stats.TotalRows,
		Inserted:   stats.Inserted,
		Failed:     stats.Failed,
		Status:     stats.Status(),
		ImportedAt: i.opts.Now(),
	}
	if err := i.store.RecordImport(ctx, rec); err != nil {
		return stats, fmt.Errorf("failed to record import: %w", err)
	}
	return stats, nil
}

// transformRow normalizes one raw row. Field transforms are lenient;
// only structurally unusable rows error.
func (i *Importer) transformRow(table *tracklog.Table, row tracklog.Row) (*models.Session, error) {
	date, clock := tracklog.ParseDateTime(table.Get(row, tracklog.ColWhen), i.opts.Now())
	category := tracklog.ClassifyVessel(table.Get(row, tracklog.ColVessel))

	s := &models.Session{
		ID:   models.NormalizeID(table.GetPrefix(row, identifierPrefix)),
		Date: date,
		Time: clock,
		Location: models.DisplayName(
			table.Get(row, tracklog.ColLocation),
			table.Get(row, tracklog.ColCity),
			table.Get(row, tracklog.ColState)),
		WhoWith:          whoWith(table.Get(row, tracklog.ColAlone), table.Get(row, tracklog.ColPeople)),
		Vessel:           string(category),
		AccessoryUsed:    accessory(table.Get(row, tracklog.ColAccessory)),
		MyVessel:         tracklog.ParseBool(table.Get(row, tracklog.ColYourVessel)),
		MySubstance:      tracklog.ParseBool(table.Get(row, tracklog.ColYourSubstance)),
		StrainName:       strings.TrimSpace(table.Get(row, tracklog.ColStrain)),
		StrainType:       strings.TrimSpace(table.Get(row, tracklog.ColStrainType)),
		PurchasedLegally: tracklog.ParseBool(table.Get(row, tracklog.ColLegalPurchase)),
		StatePurchased:   strings.TrimSpace(table.Get(row, tracklog.ColStatePurchased)),
		Tobacco:          tracklog.ParseBool(table.Get(row, tracklog.ColTobacco)),
		Kief:             tracklog.ParseBool(table.Get(row, tracklog.ColKief)),
		Concentrate:      tracklog.ParseBool(table.Get(row, tracklog.ColConcentrate)),
		Lavender:         tracklog.ParseBool(table.Get(row, tracklog.ColLavender)),
		Quantity:         tracklog.ParseQuantityText(table.Get(row, tracklog.ColQuantity), category),
		Comments:         strings.TrimSpace(table.Get(row, tracklog.ColComments)),
	}

	if thc, ok := tracklog.ParseTHC(table.Get(row, tracklog.ColTHC)); ok {
		s.THCPercent = &thc
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func whoWith(alone, people string) string {
	if tracklog.ParseBool(alone) {
		return "Alone"
	}
	return strings.TrimSpace(people)
}

func accessory(raw string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return "N/A"
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
