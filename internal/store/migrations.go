package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Initial schema",
		SQL: `
CREATE TABLE IF NOT EXISTS locations (
    code TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    alias TEXT,
    latitude REAL NOT NULL,
    longitude REAL NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS hourly_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    location_code TEXT NOT NULL,
    date TEXT NOT NULL,
    hour INTEGER NOT NULL,
    temperature INTEGER NOT NULL DEFAULT 0,
    weather_status TEXT NOT NULL DEFAULT '',
    precip_prob INTEGER NOT NULL DEFAULT 0,
    precip_amount TEXT NOT NULL DEFAULT '-',
    humidity INTEGER NOT NULL DEFAULT 0,
    wind_direction TEXT NOT NULL DEFAULT 'none',
    wind_speed REAL NOT NULL DEFAULT 0,
    updated_at DATETIME NOT NULL,
    UNIQUE(location_code, date, hour)
);

CREATE INDEX IF NOT EXISTS idx_hourly_code_date ON hourly_records(location_code, date);
`,
	},
	{
		Version:     2,
		Description: "Outfit rule table",
		SQL: `
CREATE TABLE IF NOT EXISTS outfit_rules (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    min_temp REAL NOT NULL,
    max_temp REAL,
    humidity_min REAL,
    humidity_max REAL,
    wind_speed_min REAL,
    wind_speed_max REAL,
    top TEXT NOT NULL,
    bottom TEXT NOT NULL,
    accessories TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		Version:     3,
		Description: "Add priority and active flag to outfit rules",
		SQL: `
ALTER TABLE outfit_rules ADD COLUMN priority INTEGER NOT NULL DEFAULT 100;
ALTER TABLE outfit_rules ADD COLUMN active BOOLEAN NOT NULL DEFAULT TRUE;
`,
	},
}

func (s *Store) Migrate() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		log.Printf("migrations: applying %d - %s", m.Version, m.Description)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx for migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Description, time.Now().UTC(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}

		log.Printf("migrations: completed %d", m.Version)
	}

	return nil
}

func (s *Store) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME
		)
	`)
	return err
}

func (s *Store) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (s *Store) MigrationVersion() (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
