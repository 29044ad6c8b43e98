package db

import (
	"context"
	"fmt"

	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/internal/core/storage"
)

// UpsertLocation stores a location keyed by its normalized composite
// key. Re-seeing a key bumps the usage count and backfills fields the
// stored row is missing. Returns the stored entity either way.
func (db *DB) UpsertLocation(ctx context.Context, loc *models.Location) (*models.Location, error) {
	key := loc.Key()

	usage := loc.UsageCount
	if usage == 0 {
		usage = 1
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO locations (loc_key, name, city, state, country, postal_code, latitude, longitude, usage_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(loc_key) DO UPDATE SET
			usage_count = usage_count + 1,
			latitude = COALESCE(locations.latitude, excluded.latitude),
			longitude = COALESCE(locations.longitude, excluded.longitude),
			country = CASE WHEN locations.country IS NULL OR locations.country = '' THEN excluded.country ELSE locations.country END,
			postal_code = CASE WHEN locations.postal_code IS NULL OR locations.postal_code = '' THEN excluded.postal_code ELSE locations.postal_code END
	`, key, loc.Name, loc.City, loc.State, loc.Country, loc.PostalCode, loc.Latitude, loc.Longitude, usage)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert location: %w", err)
	}

	row := db.conn.QueryRowContext(ctx, locationSelect+` WHERE loc_key = ?`, key)
	stored, err := scanLocation(row)
	if err != nil {
		return nil, fmt.Errorf("failed to load location: %w", err)
	}
	return stored, nil
}

// ListLocations returns all locations, most used first.
func (db *DB) ListLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := db.conn.QueryContext(ctx, locationSelect+` ORDER BY usage_count DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var locations []models.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *l)
	}
	return locations, rows.Err()
}

// UpdateLocation rewrites a location row by id. Used by geocode
// backfill to attach coordinates.
func (db *DB) UpdateLocation(ctx context.Context, loc *models.Location) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE locations
		SET name = ?, city = ?, state = ?, country = ?, postal_code = ?,
			latitude = ?, longitude = ?, usage_count = ?,
			loc_key = ?
		WHERE id = ?
	`, loc.Name, loc.City, loc.State, loc.Country, loc.PostalCode,
		loc.Latitude, loc.Longitude, loc.UsageCount, loc.Key(), loc.ID)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const locationSelect = `
	SELECT id, name, COALESCE(city, ''), COALESCE(state, ''),
		COALESCE(country, ''), COALESCE(postal_code, ''),
		latitude, longitude, usage_count
	FROM locations`

func scanLocation(r rowScanner) (*models.Location, error) {
	var l models.Location
	err := r.Scan(
		&l.ID, &l.Name, &l.City, &l.State,
		&l.Country, &l.PostalCode,
		&l.Latitude, &l.Longitude, &l.UsageCount,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
