package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	s, err := Open(DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Dialect() != "sqlite3" {
		t.Errorf("dialect = %q, want sqlite3", s.Dialect())
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "x"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWALModeFileDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func testKVBehaviour(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("get missing = ok %v, err %v", ok, err)
	}

	if err := kv.Set(ctx, "a", `[1,2]`); err != nil {
		t.Fatalf("set a: %v", err)
	}
	if err := kv.Set(ctx, "b", "7"); err != nil {
		t.Fatalf("set b: %v", err)
	}
	if err := kv.Set(ctx, "a", `[3]`); err != nil {
		t.Fatalf("overwrite a: %v", err)
	}

	v, ok, err := kv.Get(ctx, "a")
	if err != nil || !ok || v != `[3]` {
		t.Fatalf("get a = %q, %v, %v; want [3]", v, ok, err)
	}

	if err := kv.Delete(ctx, "a", "b", "never-set"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, key := range []string{"a", "b"} {
		if _, ok, _ := kv.Get(ctx, key); ok {
			t.Errorf("%s still present after delete", key)
		}
	}
	if err := kv.Delete(ctx); err != nil {
		t.Errorf("delete with no keys: %v", err)
	}
}

func TestSQLKV(t *testing.T) {
	testKVBehaviour(t, openTestStore(t).KV())
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	testKVBehaviour(t, kv)
	if keys := kv.Keys(); len(keys) != 0 {
		t.Errorf("keys = %v, want none", keys)
	}
}

func TestSQLKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.KV().Set(ctx, "chinese-app-study-streak", "4"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	v, ok, err := s.KV().Get(ctx, "chinese-app-study-streak")
	if err != nil || !ok || v != "4" {
		t.Errorf("get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")
	ctx := context.Background()

	s, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.KV().Set(ctx, "chinese-app-favorites", "[1]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.migrate(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	kv := s.KV()
	if err := kv.Set(ctx, "chinese-app-favorites", "[2]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, "chinese-app-favorites")
	if err != nil || !ok || v != "[2]" {
		t.Fatalf("get after migrate = %q, %v, %v; want [2]", v, ok, err)
	}
	if err := kv.Delete(ctx, "chinese-app-favorites"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "chinese-app-favorites"); ok {
		t.Error("key still present after delete")
	}
}

func TestDefaultDBPathEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "hanzi.db")
	t.Setenv("HANZI_DB", want)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HANZI_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "hanzi", "hanzi.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
