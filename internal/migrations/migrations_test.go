package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRun_AppliesAll(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	version, err := GetCurrentVersion(db)
	if err != nil {
		t.Fatalf("GetCurrentVersion error: %v", err)
	}
	want := AllMigrations[len(AllMigrations)-1].Version
	if version != want {
		t.Errorf("version = %d, want %d", version, want)
	}

	// source column added by migration 1
	if _, err := db.Exec(`INSERT INTO history (timestamp, command, method, source) VALUES ('2026-01-01 00:00:00', 'curl', 'GET', 'args')`); err != nil {
		t.Errorf("insert with source column failed: %v", err)
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	if err := Run(db); err != nil {
		t.Fatalf("second Run error: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != len(AllMigrations) {
		t.Errorf("recorded %d migrations, want %d", count, len(AllMigrations))
	}
}

func TestAllMigrations_Ordered(t *testing.T) {
	for i := 1; i < len(AllMigrations); i++ {
		if AllMigrations[i].Version <= AllMigrations[i-1].Version {
			t.Errorf("migration %d (%s) is out of order", AllMigrations[i].Version, AllMigrations[i].Name)
		}
	}
}

func TestRun_CreatesBookmarkTable(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO query_bookmarks (name, expression) VALUES ('ids', 'items[].id')`); err != nil {
		t.Fatalf("insert bookmark failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO query_bookmarks (name, expression) VALUES ('ids', 'other')`); err == nil {
		t.Error("bookmark names should be unique")
	}
}
