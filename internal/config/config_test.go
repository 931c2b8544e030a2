package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GetPageSize() != DefaultPageSize {
		t.Errorf("page size %d, want %d", cfg.GetPageSize(), DefaultPageSize)
	}
	if cfg.GetPollIntervalSecs() != DefaultPollInterval {
		t.Errorf("poll interval %d, want %d", cfg.GetPollIntervalSecs(), DefaultPollInterval)
	}
	if cfg.GetServerURL() != "" {
		t.Errorf("server URL %q, want empty", cfg.GetServerURL())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.SetServerURL("https://bbs.example.com")
	cfg.SetUsername("Testy")
	cfg.SetNotificationsEnabled(true)
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.GetServerURL() != "https://bbs.example.com" {
		t.Errorf("server URL %q", loaded.GetServerURL())
	}
	if loaded.GetUsername() != "Testy" {
		t.Errorf("username %q", loaded.GetUsername())
	}
	if !loaded.GetNotificationsEnabled() {
		t.Error("notifications flag lost")
	}
}

func TestLoadFromRejectsBadServerURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"server_url": "not a url"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected validation error for relative server URL")
	}
}

func TestLoadFromRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestZeroValuesGetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"page_size": 0, "poll_interval_secs": -5}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GetPageSize() != DefaultPageSize {
		t.Errorf("page size %d, want default", cfg.GetPageSize())
	}
	if cfg.GetPollIntervalSecs() != DefaultPollInterval {
		t.Errorf("poll interval %d, want default", cfg.GetPollIntervalSecs())
	}
}
