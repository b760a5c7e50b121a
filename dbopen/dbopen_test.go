package dbopen

import (
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestOpen_CreatesParentDirsAndAppliesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	db, err := Open(path,
		WithMkdirAll(),
		WithSchema("CREATE TABLE things (id TEXT PRIMARY KEY, n INTEGER)"),
	)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("INSERT INTO things (id, n) VALUES ('a', 1)"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var n int
	if err := db.QueryRow("SELECT n FROM things WHERE id = 'a'").Scan(&n); err != nil {
		t.Fatalf("select: %v", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
}

func TestOpen_Pragmas(t *testing.T) {
	db := OpenMemory(t)

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("pragma foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
	var timeout int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("pragma busy_timeout: %v", err)
	}
	if timeout != 10_000 {
		t.Errorf("busy_timeout = %d, want 10000", timeout)
	}
}

func TestOpen_BadSchema(t *testing.T) {
	_, err := Open(":memory:", WithSchema("CREATE TABE broken"))
	if err == nil {
		t.Fatal("Open with invalid schema succeeded")
	}
}

func TestOpenMemory_SharedAcrossQueries(t *testing.T) {
	db := OpenMemory(t, WithSchema("CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)"))

	if _, err := db.Exec("INSERT INTO kv (k, v) VALUES ('x', 'y')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var v string
	if err := db.QueryRow("SELECT v FROM kv WHERE k = 'x'").Scan(&v); err != nil {
		t.Fatalf("select: %v", err)
	}
	if v != "y" {
		t.Errorf("v = %q, want y", v)
	}
}
