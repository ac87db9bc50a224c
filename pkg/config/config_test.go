package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DAYBOOK_DB_PATH", "DAYBOOK_WAL", "DAYBOOK_SYNC"} {
		// t.Setenv registers the restore; the vars must be absent entirely
		// for the envconfig defaults to apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	s, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.DBPath == "" {
		t.Errorf("Expected a default DB path")
	}
	if !s.WAL {
		t.Errorf("Expected WAL enabled by default")
	}
	if s.SyncMode != "NORMAL" {
		t.Errorf("Expected default sync mode NORMAL, got %q", s.SyncMode)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DAYBOOK_DB_PATH", "/tmp/custom.db")
	t.Setenv("DAYBOOK_WAL", "false")
	t.Setenv("DAYBOOK_SYNC", "FULL")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.DBPath != "/tmp/custom.db" {
		t.Errorf("Expected DB path override, got %q", s.DBPath)
	}
	if s.WAL {
		t.Errorf("Expected WAL disabled via env")
	}
	if s.SyncMode != "FULL" {
		t.Errorf("Expected sync mode FULL, got %q", s.SyncMode)
	}
}
