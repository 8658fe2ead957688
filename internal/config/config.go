// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is the PelisPlusHD mirror used when none is configured.
const DefaultBaseURL = "https://ww3.pelisplus.to"

// Duration is a time.Duration that decodes from a TOML string like "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds all application configuration.
type Config struct {
	BaseURL     string   `toml:"base_url"`
	Player      string   `toml:"player"`
	DownloadDir string   `toml:"download_dir"`
	Debug       bool     `toml:"debug"`
	Workers     int      `toml:"workers"`
	Timeout     Duration `toml:"timeout"`
	CacheSize   int      `toml:"cache_size"`
	CacheTTL    Duration `toml:"cache_ttl"`
	PrefsDB     string   `toml:"prefs_db"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Player:      "mpv",
		DownloadDir: "~/Videos/pelisplus",
		Debug:       false,
		Workers:     1,
		Timeout:     Duration{30 * time.Second},
		CacheSize:   64,
		CacheTTL:    Duration{10 * time.Minute},
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pelisplus"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pelisplus"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "https://") && !strings.HasPrefix(c.BaseURL, "http://") {
		return fmt.Errorf("base URL %q must start with http:// or https://", c.BaseURL)
	}

	if c.Workers < 1 || c.Workers > 16 {
		return fmt.Errorf("workers must be between 1 and 16, got %d", c.Workers)
	}

	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size cannot be negative")
	}
	if c.CacheTTL.Duration < 0 {
		return fmt.Errorf("cache_ttl cannot be negative")
	}

	return nil
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	return expandHome(c.DownloadDir)
}

// PrefsPath returns the preference database path, honouring prefs_db.
func (c *Config) PrefsPath() (string, error) {
	if c.PrefsDB != "" {
		return expandHome(c.PrefsDB)
	}
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "pelisplus", "prefs.db"), nil
}

func expandHome(dir string) (string, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}
