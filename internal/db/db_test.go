package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	for _, table := range []string{"snapshots", "nodes", "links"} {
		var count int
		err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "graph.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}
	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestCascadeDelete(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	if _, err := d.Exec(`INSERT INTO snapshots (id, project_name) VALUES ('s1', 'demo')`); err != nil {
		t.Fatalf("insert snapshot: %v", err)
	}
	if _, err := d.Exec(`INSERT INTO nodes (snapshot_id, position, id) VALUES ('s1', 0, 'a')`); err != nil {
		t.Fatalf("insert node: %v", err)
	}
	if _, err := d.Exec(`DELETE FROM snapshots WHERE id = 's1'`); err != nil {
		t.Fatalf("delete snapshot: %v", err)
	}

	var count int
	d.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&count)
	if count != 0 {
		t.Errorf("expected cascade to remove nodes, %d left", count)
	}
}
