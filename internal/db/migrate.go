package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS record_log (
		id          TEXT PRIMARY KEY,
		path        TEXT NOT NULL,
		delta       INTEGER NOT NULL,
		recorded_at TEXT NOT NULL,
		undone_at   TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_record_log_path ON record_log(path)`,
	`CREATE INDEX IF NOT EXISTS idx_record_log_recorded ON record_log(recorded_at)`,

	`CREATE TABLE IF NOT EXISTS change_log (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL CHECK(kind IN ('add','expand')),
		path       TEXT NOT NULL,
		name       TEXT NOT NULL,
		changed_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_change_log_changed ON change_log(changed_at)`,
}
