package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.aurarc, $XDG_CONFIG_HOME/aura/config.toml, ~/.config/aura/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultPath returns the preferred config file location for writing.
func DefaultPath() (string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "aura", "config.toml"), nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".aurarc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "aura", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Backend
	if v := os.Getenv("AURA_BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("AURA_BACKEND_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Backend.Timeout = i
		}
	}

	// Broadcast
	if v := os.Getenv("AURA_BROADCAST_URL"); v != "" {
		cfg.Broadcast.URL = v
	}

	// Camera
	if v := os.Getenv("AURA_CAMERA_STREAM_URL"); v != "" {
		cfg.Camera.StreamURL = v
	}
	if v := os.Getenv("AURA_CAMERA_SNAPSHOT_URL"); v != "" {
		cfg.Camera.SnapshotURL = v
	}

	// Detector
	if v := os.Getenv("AURA_DETECTOR_MODE"); v != "" {
		cfg.Detector.Mode = v
	}
	if v := os.Getenv("AURA_DETECTOR_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Detector.Interval = i
		}
	}

	// Music
	if v := os.Getenv("AURA_MUSIC_DEVICE_ID"); v != "" {
		cfg.Music.DeviceID = v
	}
	if v := os.Getenv("AURA_MUSIC_LIMIT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Music.Limit = i
		}
	}

	// TUI
	if v := os.Getenv("AURA_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("AURA_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Log
	if v := os.Getenv("AURA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AURA_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
