package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Sync        SyncConfig        `toml:"sync"`
	Viewer      ViewerConfig      `toml:"viewer"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	MangaDex MangaDexConfig `toml:"mangadex"`
	Comick   ComickConfig   `toml:"comick"`
}

// MangaDexConfig contains MangaDex account credentials.
//
// SessionToken, when set, skips the password login.
type MangaDexConfig struct {
	Username     string `toml:"username"`
	Password     string `toml:"password"`
	SessionToken string `toml:"session_token"`
	BaseURL      string `toml:"base_url"`
}

// ComickConfig contains the ComicK bearer token.
type ComickConfig struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains match cache database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SyncConfig contains tuning knobs for the sync pipeline and export.
type SyncConfig struct {
	PageLimit      int     `toml:"page_limit"`
	SearchLimit    int     `toml:"search_limit"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
}

// ViewerConfig contains viewer settings.
type ViewerConfig struct {
	LibraryPath string `toml:"library_path"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
