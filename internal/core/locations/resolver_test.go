package locations

import (
	"context"
	"fmt"
	"testing"

	"github.com/blakemt/pufflog/internal/core/geocode"
	"github.com/blakemt/pufflog/internal/core/storage"
)

type stubGeocoder struct {
	calls   int
	failFor map[string]bool
}

func (g *stubGeocoder) Geocode(ctx context.Context, query string) (*geocode.Result, error) {
	g.calls++
	if g.failFor[query] {
		return nil, fmt.Errorf("no match for %q", query)
	}
	return &geocode.Result{Latitude: 40.0, Longitude: -105.0, Country: "United States"}, nil
}

func TestResolveDedupAndGeocode(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	geo := &stubGeocoder{}
	r := NewResolver(store, geo)

	first, err := r.Resolve(ctx, "Home", "Denver", "CO")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !first.HasCoordinates() {
		t.Error("expected coordinates on first resolve")
	}

	// Same place again: one more usage, zero more lookups.
	second, err := r.Resolve(ctx, "home", "denver", "co")
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID || second.UsageCount != 2 {
		t.Errorf("dedup failed: %+v", second)
	}
	if geo.calls != 1 {
		t.Errorf("geocoder calls = %d, want 1", geo.calls)
	}
	if r.Geocoded != 1 || r.Failed != 0 {
		t.Errorf("tallies = (%d, %d)", r.Geocoded, r.Failed)
	}
}

func TestResolveFailureTally(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	geo := &stubGeocoder{failFor: map[string]bool{"Nowhere": true}}
	r := NewResolver(store, geo)

	loc, err := r.Resolve(ctx, "Nowhere", "", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	// A failed lookup still stores the location, just without coordinates.
	if loc == nil || loc.HasCoordinates() {
		t.Errorf("loc = %+v", loc)
	}
	if r.Failed != 1 {
		t.Errorf("Failed = %d", r.Failed)
	}

	// Repeat rows do not retry the failed key.
	_, _ = r.Resolve(ctx, "Nowhere", "", "")
	if geo.calls != 1 {
		t.Errorf("geocoder calls = %d, want 1", geo.calls)
	}
}

func TestResolveEmpty(t *testing.T) {
	r := NewResolver(storage.NewMemoryStore(), nil)
	loc, err := r.Resolve(context.Background(), "", "  ", "")
	if err != nil || loc != nil {
		t.Errorf("Resolve(empty) = (%+v, %v)", loc, err)
	}
}

func TestResolveNoGeocoder(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	r := NewResolver(store, nil)

	loc, err := r.Resolve(ctx, "Home", "Denver", "CO")
	if err != nil {
		t.Fatal(err)
	}
	if loc == nil || loc.HasCoordinates() {
		t.Errorf("expected stored location without coordinates, got %+v", loc)
	}
}

func TestBackfill(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	// Seed two locations without coordinates, one that will fail.
	r := NewResolver(store, nil)
	if _, err := r.Resolve(ctx, "Home", "Denver", "CO"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Resolve(ctx, "Nowhere", "", ""); err != nil {
		t.Fatal(err)
	}

	geo := &stubGeocoder{failFor: map[string]bool{"Nowhere": true}}
	backfiller := NewResolver(store, geo)
	updated, err := backfiller.Backfill(ctx, 0)
	if err != nil {
		t.Fatalf("Backfill() error = %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	if backfiller.Geocoded != 1 || backfiller.Failed != 1 {
		t.Errorf("tallies = (%d, %d)", backfiller.Geocoded, backfiller.Failed)
	}

	locs, _ := store.ListLocations(ctx)
	for _, l := range locs {
		if l.Name == "Home" && !l.HasCoordinates() {
			t.Error("Home should have coordinates after backfill")
		}
	}
}
