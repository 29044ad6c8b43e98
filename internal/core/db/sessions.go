package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/internal/core/storage"
	"github.com/blakemt/pufflog/pkg/tracklog"
)

// SaveSession inserts or replaces one session row. The quantity is
// stored as JSON, tagged with its type, so analytics can reconstruct it.
func (db *DB) SaveSession(ctx context.Context, s *models.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}

	quantity, err := json.Marshal(s.Quantity)
	if err != nil {
		return fmt.Errorf("failed to encode quantity: %w", err)
	}

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions (
			id, date, time, location, latitude, longitude, who_with,
			vessel, accessory_used, my_vessel, my_substance,
			strain_name, strain_type, thc_percentage,
			purchased_legally, state_purchased,
			tobacco, kief, concentrate, lavender,
			quantity, comments, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID, s.Date, s.Time, s.Location, s.Latitude, s.Longitude, s.WhoWith,
		s.Vessel, s.AccessoryUsed, s.MyVessel, s.MySubstance,
		s.StrainName, s.StrainType, s.THCPercent,
		s.PurchasedLegally, s.StatePurchased,
		s.Tobacco, s.Kief, s.Concentrate, s.Lavender,
		string(quantity), s.Comments, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSession loads one session by id.
func (db *DB) GetSession(ctx context.Context, id string) (*models.Session, error) {
	row := db.conn.QueryRowContext(ctx, sessionSelect+` WHERE id = ?`, id)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return s, nil
}

// ListSessions returns sessions newest first, narrowed by the filter.
func (db *DB) ListSessions(ctx context.Context, f storage.SessionFilter) ([]models.Session, error) {
	query := sessionSelect + ` WHERE 1=1`
	args := []interface{}{}

	if f.Vessel != "" {
		query += ` AND LOWER(vessel) = LOWER(?)`
		args = append(args, f.Vessel)
	}
	if f.Strain != "" {
		query += ` AND strain_name LIKE ? COLLATE NOCASE`
		args = append(args, "%"+f.Strain+"%")
	}
	if f.Location != "" {
		query += ` AND location LIKE ? COLLATE NOCASE`
		args = append(args, "%"+f.Location+"%")
	}
	if !f.Since.IsZero() {
		query += ` AND date >= ?`
		args = append(args, f.Since.Format("2006-01-02"))
	}
	if !f.Until.IsZero() {
		query += ` AND date <= ?`
		args = append(args, f.Until.Format("2006-01-02"))
	}

	query += ` ORDER BY date DESC, time DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// DeleteSession removes one session by id.
func (db *DB) DeleteSession(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
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

// RecordImport appends one row to the import log.
func (db *DB) RecordImport(ctx context.Context, rec storage.ImportRecord) error {
	importedAt := rec.ImportedAt
	if importedAt.IsZero() {
		importedAt = time.Now()
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO import_log (source_file, imported_at, total_rows, rows_inserted, rows_failed, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.SourceFile, importedAt, rec.TotalRows, rec.Inserted, rec.Failed, rec.Status)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

const sessionSelect = `
	SELECT id, date, time, COALESCE(location, ''), latitude, longitude,
		COALESCE(who_with, ''), vessel, COALESCE(accessory_used, ''),
		my_vessel, my_substance,
		COALESCE(strain_name, ''), COALESCE(strain_type, ''), thc_percentage,
		purchased_legally, COALESCE(state_purchased, ''),
		tobacco, kief, concentrate, lavender,
		quantity, COALESCE(comments, ''), created_at
	FROM sessions`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(r rowScanner) (*models.Session, error) {
	var s models.Session
	var quantity string
	err := r.Scan(
		&s.ID, &s.Date, &s.Time, &s.Location, &s.Latitude, &s.Longitude,
		&s.WhoWith, &s.Vessel, &s.AccessoryUsed,
		&s.MyVessel, &s.MySubstance,
		&s.StrainName, &s.StrainType, &s.THCPercent,
		&s.PurchasedLegally, &s.StatePurchased,
		&s.Tobacco, &s.Kief, &s.Concentrate, &s.Lavender,
		&quantity, &s.Comments, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	var q tracklog.QuantityValue
	if err := json.Unmarshal([]byte(quantity), &q); err != nil {
		return nil, fmt.Errorf("failed to decode quantity for %s: %w", s.ID, err)
	}
	s.Quantity = q
	return &s, nil
}
