package cache

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the persistent cache tables if they do not exist.
// Used by cachetool and at server startup when Postgres caching is enabled.
func InitSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			address     TEXT PRIMARY KEY,
			latitude    DOUBLE PRECISION NOT NULL,
			longitude   DOUBLE PRECISION NOT NULL,
			inserted_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS distance_cache (
			batch_key        TEXT NOT NULL,
			position         INTEGER NOT NULL,
			distance_miles   DOUBLE PRECISION NOT NULL,
			duration_minutes DOUBLE PRECISION NOT NULL,
			inserted_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (batch_key, position)
		);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init cache schema: %w", err)
		}
	}
	return nil
}

// FlushTables empties both cache tables.
func FlushTables(db *sql.DB) error {
	for _, table := range []string{"geocode_cache", "distance_cache"} {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s;", table)); err != nil {
			return fmt.Errorf("flush %s: %w", table, err)
		}
	}
	return nil
}
