// ABOUTME: Configuration management for the currents CLI and server
// ABOUTME: Loads a JSON config file with XDG-style defaults and ~ expansion

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/currents/internal/storage"
)

// Config stores currents configuration.
type Config struct {
	// DataDir is the directory holding currents.db.
	// Supports ~ expansion. Defaults to ~/.local/share/currents.
	DataDir string `json:"data_dir,omitempty"`

	// ListenAddr is the HTTP server bind address. Defaults to :8000.
	ListenAddr string `json:"listen_addr,omitempty"`

	// FetchTimeoutSeconds bounds each upstream fetch. Defaults to 30.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty"`
}

// dbFilename is the SQLite database filename inside the data directory.
const dbFilename = "currents.db"

// DefaultListenAddr is the HTTP bind address when none is configured.
const DefaultListenAddr = ":8000"

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetListenAddr returns the configured bind address, defaulting to :8000.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// GetFetchTimeout returns the per-fetch timeout, defaulting to 30s.
func (c *Config) GetFetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// DBPath returns the full path of the SQLite database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), dbFilename)
}

// OpenStorage creates the Store backing this configuration.
func (c *Config) OpenStorage() (storage.Store, error) {
	return storage.NewSQLiteStore(c.DBPath())
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "currents", "config.json")
}

// Load reads config from disk. A missing file yields the defaults.
func Load() (*Config, error) {
	return loadFrom(GetConfigPath())
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// defaultDataDir returns the standard XDG data directory for currents.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "currents")
}
