package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q", cfg.DefaultLanguage)
	}
	if cfg.GitHub.Owner != "" {
		t.Errorf("GitHub.Owner = %q, want webhook disabled by default", cfg.GitHub.Owner)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kvblog.toml")
	content := `
port = 9090
data_dir = "/var/lib/kvblog"
default_language = "de"

[github]
owner = "example"
repo = "content"
content_prefix = "posts/"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.DataDir != "/var/lib/kvblog" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.DefaultLanguage != "de" {
		t.Errorf("DefaultLanguage = %q", cfg.DefaultLanguage)
	}
	if cfg.GitHub.Owner != "example" || cfg.GitHub.Repo != "content" {
		t.Errorf("GitHub = %+v", cfg.GitHub)
	}
	if cfg.GitHub.ContentPrefix != "posts/" {
		t.Errorf("ContentPrefix = %q", cfg.GitHub.ContentPrefix)
	}
}

func TestLoad_RejectsInvalidPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kvblog.toml")
	if err := os.WriteFile(path, []byte("port = -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid port")
	}
}
