package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TADA_CONFIG", "")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Storage.Backend != BackendJSON {
		t.Errorf("backend = %q, want json", c.Storage.Backend)
	}
	if !c.Storage.Watch {
		t.Error("watch should default to true")
	}
	if c.UI.Theme != "classic" || c.UI.Filter != "all" {
		t.Errorf("ui = %+v", c.UI)
	}
	if c.Log.Level != "warn" {
		t.Errorf("log.level = %q", c.Log.Level)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[storage]
backend = "sqlite"
path = "/tmp/todos.db"

[ui]
theme = "neon"
filter = "active"
group = true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TADA_UI_THEME", "mono")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Storage.Backend != BackendSQLite || c.DataPath() != "/tmp/todos.db" {
		t.Errorf("storage = %+v", c.Storage)
	}
	if c.UI.Theme != "mono" {
		t.Errorf("theme = %q, want env override mono", c.UI.Theme)
	}
	if c.UI.Filter != "active" || !c.UI.Group {
		t.Errorf("ui = %+v", c.UI)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TADA_CONFIG", "")
	t.Setenv("TADA_STORAGE_BACKEND", "postgres")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "postgres") {
		t.Fatalf("err = %v, want unknown backend error", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestDataPathDefaults(t *testing.T) {
	if got := (Config{Storage: StorageConfig{Backend: BackendSQLite}}).DataPath(); got != "todos.db" {
		t.Errorf("sqlite default = %q", got)
	}
	if got := (Config{Storage: StorageConfig{Backend: BackendJSON}}).DataPath(); got != "" {
		t.Errorf("json default = %q", got)
	}
}
