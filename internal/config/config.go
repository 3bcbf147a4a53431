package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755

	// DefaultEndpoint is the analysis service base endpoint used when nothing
	// else is configured. The service exposes /analyze and /health under it.
	DefaultEndpoint = "http://localhost:8000/api"

	// EndpointEnvVar overrides the configured endpoint when set.
	EndpointEnvVar = "REDDITMOOD_ENDPOINT"
)

var (
	// ConfigDir is the global configuration directory (~/.redditmood)
	ConfigDir string

	// SettingsFile is the settings file path
	SettingsFile string

	// DatabasePath is the SQLite database file for analysis history.
	// Package-level so tests can point it at a temp directory.
	DatabasePath string

	// LogPath is the diagnostic log file
	LogPath string
)

// Settings holds the persisted client configuration.
type Settings struct {
	Endpoint       string `json:"endpoint,omitempty"`
	HistoryEnabled *bool  `json:"historyEnabled,omitempty"`
}

// Initialize sets up the configuration directory and files.
// It creates ~/.redditmood/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".redditmood")
	SettingsFile = filepath.Join(ConfigDir, "settings.json")
	DatabasePath = filepath.Join(ConfigDir, "redditmood.db")
	LogPath = filepath.Join(ConfigDir, "redditmood.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		defaultSettings := []byte("{}\n")
		if err := os.WriteFile(SettingsFile, defaultSettings, FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	// Local .env overrides for development setups, best-effort.
	_ = gotenv.Load()

	return nil
}

// LoadSettings reads the settings file. A missing file yields zero settings.
func LoadSettings() (*Settings, error) {
	data, err := os.ReadFile(SettingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}

// ResolveEndpoint picks the analysis endpoint with precedence:
// explicit flag > environment > settings file > default.
func ResolveEndpoint(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EndpointEnvVar); env != "" {
		return env
	}
	if s, err := LoadSettings(); err == nil && s.Endpoint != "" {
		return s.Endpoint
	}
	return DefaultEndpoint
}

// HistoryEnabled reports whether analysis history should be recorded.
// Enabled by default.
func HistoryEnabled(s *Settings) bool {
	if s == nil || s.HistoryEnabled == nil {
		return true
	}
	return *s.HistoryEnabled
}
