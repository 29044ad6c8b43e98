package db

import (
	"fmt"
)

// runMigrations applies database migrations for existing databases
func (db *DB) runMigrations() error {
	// Migration 1: Add country and postal_code to locations
	if err := db.migration001LocationAddress(); err != nil {
		return fmt.Errorf("migration 001: %w", err)
	}

	// Migration 2: Add lavender flag to sessions
	if err := db.migration002Lavender(); err != nil {
		return fmt.Errorf("migration 002: %w", err)
	}

	return nil
}

// migration001LocationAddress adds the geocoder-sourced address columns
// to databases created before the geocoding pass existed.
func (db *DB) migration001LocationAddress() error {
	for _, col := range []string{"country", "postal_code"} {
		has, err := db.hasColumn("locations", col)
		if err != nil {
			return err
		}
		if !has {
			_, err = db.conn.Exec(fmt.Sprintf(`ALTER TABLE locations ADD COLUMN %s TEXT;`, col))
			if err != nil {
				return fmt.Errorf("add %s column: %w", col, err)
			}
		}
	}
	return nil
}

// migration002Lavender adds the lavender flag to sessions.
func (db *DB) migration002Lavender() error {
	has, err := db.hasColumn("sessions", "lavender")
	if err != nil {
		return err
	}
	if !has {
		_, err = db.conn.Exec(`ALTER TABLE sessions ADD COLUMN lavender BOOLEAN NOT NULL DEFAULT 0;`)
		if err != nil {
			return fmt.Errorf("add lavender column: %w", err)
		}
	}
	return nil
}

func (db *DB) hasColumn(table, column string) (bool, error) {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info(?)
		WHERE name = ?
	`, table, column).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
