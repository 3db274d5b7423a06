package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigs(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestMustLoad(t *testing.T) {
	dir := writeConfigs(t,
		"port: 8080\nlog_level: debug\ndefault_sections: [todo, doing, done, notes]\nmax_entry_text_len: 10000\ntx_max_retries: 5\n",
		"pg:\n  host: localhost\n  port: 5432\n  user: u\n  password: p\n  dbname: corkboard\n",
	)

	cfg := MustLoad(dir)

	if cfg.Public.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Public.Port)
	}
	if len(cfg.Public.DefaultSections) != 4 {
		t.Errorf("expected 4 default sections, got %v", cfg.Public.DefaultSections)
	}
	if cfg.Private.Pg.Dbname != "corkboard" {
		t.Errorf("expected dbname corkboard, got %s", cfg.Private.Pg.Dbname)
	}
}

func TestMustLoad_RequiredFields(t *testing.T) {
	// default_sections is intentionally missing
	dir := writeConfigs(t,
		"port: 8080\nmax_entry_text_len: 10000\ntx_max_retries: 5\n",
		"pg:\n  host: localhost\n  dbname: corkboard\n",
	)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing required field, got none")
		}
	}()

	_ = MustLoad(dir)
}

func TestMustLoad_MissingFile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for missing config folder, got none")
		}
	}()

	_ = MustLoad(t.TempDir())
}
