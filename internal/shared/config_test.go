package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "mdx.db" {
			t.Errorf("expected database path mdx.db, got %s", config.Database.Path)
		}

		if config.Sync.PageLimit != 100 {
			t.Errorf("expected page limit 100, got %d", config.Sync.PageLimit)
		}

		if config.Sync.SearchLimit != 5 {
			t.Errorf("expected search limit 5, got %d", config.Sync.SearchLimit)
		}

		if config.Viewer.LibraryPath != "library.json" {
			t.Errorf("expected library path library.json, got %s", config.Viewer.LibraryPath)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[credentials.mangadex]
username = "reader"
password = "hunter2"
base_url = "http://localhost:9090"

[credentials.comick]
token = "bearer-token"

[sync]
page_limit = 50
search_limit = 3
timeout_seconds = 10
rate_limit = 2.5

[viewer]
library_path = "/tmp/library.json"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Credentials.MangaDex.Username != "reader" {
			t.Errorf("expected mangadex username reader, got %s", config.Credentials.MangaDex.Username)
		}

		if config.Credentials.Comick.Token != "bearer-token" {
			t.Errorf("expected comick token bearer-token, got %s", config.Credentials.Comick.Token)
		}

		if config.Sync.PageLimit != 50 {
			t.Errorf("expected page limit 50, got %d", config.Sync.PageLimit)
		}

		if config.Sync.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %f", config.Sync.RateLimit)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}
