// Package locations resolves raw location columns into deduplicated,
// optionally geocoded location entities.
package locations

import (
	"context"
	"strings"
	"time"

	"github.com/blakemt/pufflog/internal/core/geocode"
	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/internal/core/storage"
)

// Resolver turns (name, city, state) triples into stored locations.
// Within one run, each composite key is geocoded at most once; failed
// lookups are tallied rather than surfaced per row.
type Resolver struct {
	store storage.Store
	geo   geocode.Geocoder
	seen  map[string]bool

	// Geocoded and Failed count lookup outcomes for the run summary.
	Geocoded int
	Failed   int
}

// NewResolver creates a resolver. A nil geocoder disables lookups;
// locations are still deduplicated and stored.
func NewResolver(store storage.Store, geo geocode.Geocoder) *Resolver {
	return &Resolver{
		store: store,
		geo:   geo,
		seen:  make(map[string]bool),
	}
}

// Resolve stores or re-counts the location and returns the stored
// entity with its coordinates, if any. Empty triples resolve to nil.
func (r *Resolver) Resolve(ctx context.Context, name, city, state string) (*models.Location, error) {
	if models.DisplayName(name, city, state) == "" {
		return nil, nil
	}

	// Name stays raw, possibly empty: rendering falls back to
	// "City, State" and the dedup key keeps the empty slot.
	loc := &models.Location{
		Name:  strings.TrimSpace(name),
		City:  strings.TrimSpace(city),
		State: strings.TrimSpace(state),
	}

	key := loc.Key()
	if r.geo != nil && !r.seen[key] {
		r.seen[key] = true
		result, err := r.geo.Geocode(ctx, r.query(name, city, state))
		if err != nil {
			r.Failed++
		} else {
			r.Geocoded++
			loc.Latitude = &result.Latitude
			loc.Longitude = &result.Longitude
			loc.Country = result.Country
			loc.PostalCode = result.PostalCode
		}
	}

	return r.store.UpsertLocation(ctx, loc)
}

// Backfill geocodes every stored location that still lacks
// coordinates, pausing between lookups.
func (r *Resolver) Backfill(ctx context.Context, delay time.Duration) (int, error) {
	if r.geo == nil {
		return 0, nil
	}

	locs, err := r.store.ListLocations(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range locs {
		loc := &locs[i]
		if loc.HasCoordinates() {
			continue
		}

		result, err := r.geo.Geocode(ctx, r.query(loc.Name, loc.City, loc.State))
		if err != nil {
			r.Failed++
		} else {
			r.Geocoded++
			loc.Latitude = &result.Latitude
			loc.Longitude = &result.Longitude
			if loc.Country == "" {
				loc.Country = result.Country
			}
			if loc.PostalCode == "" {
				loc.PostalCode = result.PostalCode
			}
			if err := r.store.UpdateLocation(ctx, loc); err != nil {
				return updated, err
			}
			updated++
		}

		if delay > 0 {
			select {
			case <-ctx.Done():
				return updated, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return updated, nil
}

func (r *Resolver) query(name, city, state string) string {
	var parts []string
	for _, p := range []string{name, city, state} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
