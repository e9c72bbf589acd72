package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestEnsureSchemaCreatesSnapshotsTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "schema-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO snapshots (name, payload, saved_at) VALUES ('check', '[]', '2026-08-20T12:00:00Z')`); err != nil {
		t.Fatalf("expected snapshots table to exist: %v", err)
	}

	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		t.Fatalf("read user_version: %v", err)
	}
	if version != schemaVersion {
		t.Fatalf("expected user_version %d, got %d", schemaVersion, version)
	}
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "schema-twice-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO snapshots (name, payload, saved_at) VALUES ('check', '[]', 'now')`); err != nil {
		t.Fatalf("seed row: %v", err)
	}
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("ensure schema twice: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected existing data untouched, got %d rows", count)
	}
}
