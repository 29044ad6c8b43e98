package db

func (db *DB) initSchema() error {
	schema := `
	-- Sessions table
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		location TEXT,
		latitude REAL,
		longitude REAL,
		who_with TEXT,
		vessel TEXT NOT NULL,
		accessory_used TEXT,
		my_vessel BOOLEAN NOT NULL DEFAULT 0,
		my_substance BOOLEAN NOT NULL DEFAULT 0,
		strain_name TEXT,
		strain_type TEXT,
		thc_percentage REAL,
		purchased_legally BOOLEAN NOT NULL DEFAULT 0,
		state_purchased TEXT,
		tobacco BOOLEAN NOT NULL DEFAULT 0,
		kief BOOLEAN NOT NULL DEFAULT 0,
		concentrate BOOLEAN NOT NULL DEFAULT 0,
		lavender BOOLEAN NOT NULL DEFAULT 0,
		quantity TEXT NOT NULL,
		comments TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
	CREATE INDEX IF NOT EXISTS idx_sessions_vessel ON sessions(vessel);
	CREATE INDEX IF NOT EXISTS idx_sessions_strain ON sessions(strain_name);
	CREATE INDEX IF NOT EXISTS idx_sessions_location ON sessions(location);

	-- Locations table. loc_key is the normalized (name, city, state)
	-- composite used for exact-match dedup.
	CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		loc_key TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		city TEXT,
		state TEXT,
		country TEXT,
		postal_code TEXT,
		latitude REAL,
		longitude REAL,
		usage_count INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_locations_usage ON locations(usage_count);

	-- Import log table
	CREATE TABLE IF NOT EXISTS import_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_file TEXT NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_rows INTEGER,
		rows_inserted INTEGER,
		rows_failed INTEGER,
		status TEXT CHECK(status IN ('success', 'partial', 'failed'))
	);
	`

	_, err := db.conn.Exec(schema)
	return err
}
