package storage

import (
	"database/sql"
	"fmt"
)

const schemaVersion = 1

const createSnapshots = `
CREATE TABLE IF NOT EXISTS snapshots (
	name     TEXT PRIMARY KEY,
	payload  TEXT NOT NULL,
	saved_at TEXT NOT NULL
)`

// user_version tracks the applied schema revision.
func EnsureSchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}
	if _, err := db.Exec(createSnapshots); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}
