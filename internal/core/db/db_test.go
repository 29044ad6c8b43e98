package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/internal/core/storage"
	"github.com/blakemt/pufflog/pkg/tracklog"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func testSession(id, date, vessel string) *models.Session {
	return &models.Session{
		ID:       id,
		Date:     date,
		Time:     "12:00",
		Vessel:   vessel,
		Quantity: tracklog.MakeQuantity(tracklog.CategoryFromString(vessel), 1),
	}
}

func TestNew(t *testing.T) {
	database := testDB(t)

	// Verify schema initialized
	var count int
	err := database.conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query schema: %v", err)
	}

	// Should have: sessions, locations, import_log
	if count < 3 {
		t.Errorf("Expected at least 3 tables, got %d", count)
	}
}

func TestNew_WALMode(t *testing.T) {
	database := testDB(t)

	var journalMode string
	err := database.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected WAL mode, got %s", journalMode)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)

	thc := 18.0
	s := testSession("6f1d0c9e-0000-0000-0000-000000000000", "2022-10-17", "Bong")
	s.Location = "Home"
	s.THCPercent = &thc
	s.Kief = true
	q, err := tracklog.MakeSizeQuantity(tracklog.VesselBong, "medium")
	if err != nil {
		t.Fatal(err)
	}
	s.Quantity = q

	if err := database.SaveSession(ctx, s); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	got, err := database.GetSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.Location != "Home" || !got.Kief {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.THCPercent == nil || *got.THCPercent != 18.0 {
		t.Errorf("THCPercent = %v", got.THCPercent)
	}
	if got.Quantity.Type != tracklog.QuantitySizeCategory || got.Quantity.Amount != 2 {
		t.Errorf("Quantity = %+v", got.Quantity)
	}

	if _, err := database.GetSession(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetSession(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSaveSessionUpsert(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)

	s := testSession("a", "2022-10-17", "Bong")
	if err := database.SaveSession(ctx, s); err != nil {
		t.Fatal(err)
	}
	s.Comments = "edited"
	if err := database.SaveSession(ctx, s); err != nil {
		t.Fatalf("second save error = %v", err)
	}

	all, err := database.ListSessions(ctx, storage.SessionFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].Comments != "edited" {
		t.Errorf("expected single updated row, got %+v", all)
	}
}

func TestListSessionsFilters(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)

	a := testSession("a", "2022-10-17", "Bong")
	a.StrainName = "Blue Dream"
	a.Location = "Home"
	b := testSession("b", "2022-10-18", "Joint")
	b.StrainName = "Gelato"
	b.Location = "City Park"
	for _, s := range []*models.Session{a, b} {
		if err := database.SaveSession(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	all, err := database.ListSessions(ctx, storage.SessionFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != "b" {
		t.Errorf("expected newest first, got %+v", all)
	}

	bongs, err := database.ListSessions(ctx, storage.SessionFilter{Vessel: "bong"})
	if err != nil {
		t.Fatal(err)
	}
	if len(bongs) != 1 || bongs[0].ID != "a" {
		t.Errorf("vessel filter: got %+v", bongs)
	}

	strains, err := database.ListSessions(ctx, storage.SessionFilter{Strain: "gelato"})
	if err != nil {
		t.Fatal(err)
	}
	if len(strains) != 1 || strains[0].ID != "b" {
		t.Errorf("strain filter: got %+v", strains)
	}

	since, err := database.ListSessions(ctx, storage.SessionFilter{
		Since: time.Date(2022, 10, 18, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(since) != 1 || since[0].ID != "b" {
		t.Errorf("since filter: got %+v", since)
	}

	limited, err := database.ListSessions(ctx, storage.SessionFilter{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit: got %d rows", len(limited))
	}
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)

	if err := database.SaveSession(ctx, testSession("a", "2022-10-17", "Bong")); err != nil {
		t.Fatal(err)
	}
	if err := database.DeleteSession(ctx, "a"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if err := database.DeleteSession(ctx, "a"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("double delete error = %v, want ErrNotFound", err)
	}
}

func TestUpsertLocationDedup(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)

	first, err := database.UpsertLocation(ctx, &models.Location{Name: "Home", City: "Denver", State: "CO"})
	if err != nil {
		t.Fatalf("UpsertLocation() error = %v", err)
	}
	if first.UsageCount != 1 {
		t.Errorf("first usage = %d", first.UsageCount)
	}

	// Same composite key, different casing.
	second, err := database.UpsertLocation(ctx, &models.Location{Name: "home", City: "denver", State: "co"})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Errorf("expected one entity, got ids %d and %d", first.ID, second.ID)
	}
	if second.UsageCount != 2 {
		t.Errorf("usage after dedup = %d, want 2", second.UsageCount)
	}

	locs, err := database.ListLocations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(locs) != 1 {
		t.Fatalf("expected 1 location, got %d", len(locs))
	}

	lat, lon := 39.74, -104.99
	updated := locs[0]
	updated.Latitude, updated.Longitude = &lat, &lon
	if err := database.UpdateLocation(ctx, &updated); err != nil {
		t.Fatalf("UpdateLocation() error = %v", err)
	}
	locs, _ = database.ListLocations(ctx)
	if !locs[0].HasCoordinates() {
		t.Error("expected coordinates after update")
	}
}

func TestRecordImport(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)

	rec := storage.ImportRecord{
		SourceFile: "sessions.tsv",
		TotalRows:  4,
		Inserted:   3,
		Failed:     1,
		Status:     "partial",
	}
	if err := database.RecordImport(ctx, rec); err != nil {
		t.Fatalf("RecordImport() error = %v", err)
	}

	var status string
	err := database.conn.QueryRow(`SELECT status FROM import_log WHERE source_file = 'sessions.tsv'`).Scan(&status)
	if err != nil {
		t.Fatalf("failed to read import log: %v", err)
	}
	if status != "partial" {
		t.Errorf("status = %q", status)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)

	_ = database.SaveSession(ctx, testSession("a", "2022-10-17", "Bong"))
	_ = database.SaveSession(ctx, testSession("b", "2022-10-18", "Bong"))

	stats, err := database.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalSessions != 2 {
		t.Errorf("TotalSessions = %d", stats.TotalSessions)
	}
	if len(stats.VesselCounts) != 1 || stats.VesselCounts[0].Count != 2 {
		t.Errorf("VesselCounts = %+v", stats.VesselCounts)
	}
}
