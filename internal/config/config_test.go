package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Backend.URL != "http://localhost:5000" {
		t.Errorf("Backend.URL = %q, want %q", cfg.Backend.URL, "http://localhost:5000")
	}
	if cfg.Backend.Timeout != 10 {
		t.Errorf("Backend.Timeout = %d, want 10", cfg.Backend.Timeout)
	}
	if cfg.Detector.Mode != "fast" {
		t.Errorf("Detector.Mode = %q, want %q", cfg.Detector.Mode, "fast")
	}
	if cfg.Detector.Window != 3 {
		t.Errorf("Detector.Window = %d, want 3", cfg.Detector.Window)
	}
	if cfg.Music.Limit != 20 {
		t.Errorf("Music.Limit = %d, want 20", cfg.Music.Limit)
	}
}

func TestDetectionIntervalMS(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		interval int
		want     int
	}{
		{"fast mode", "fast", 0, 100},
		{"polled mode", "polled", 0, 2000},
		{"explicit interval wins", "polled", 250, 250},
		{"empty mode defaults fast", "", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Detector: DetectorConfig{Mode: tt.mode, Interval: tt.interval}}
			if got := cfg.DetectionIntervalMS(); got != tt.want {
				t.Errorf("DetectionIntervalMS() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[backend]
url = "http://music.example.com:5000"

[detector]
mode = "polled"

[music]
limit = 5
device_id = "dev-1"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Backend.URL != "http://music.example.com:5000" {
		t.Errorf("Backend.URL = %q, want configured value", cfg.Backend.URL)
	}
	if cfg.Detector.Mode != "polled" {
		t.Errorf("Detector.Mode = %q, want %q", cfg.Detector.Mode, "polled")
	}
	if cfg.Music.Limit != 5 {
		t.Errorf("Music.Limit = %d, want 5", cfg.Music.Limit)
	}
	// Defaults still fill unset fields
	if cfg.Backend.Timeout != 10 {
		t.Errorf("Backend.Timeout = %d, want default 10", cfg.Backend.Timeout)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AURA_BACKEND_URL", "http://override:9999")
	t.Setenv("AURA_DETECTOR_INTERVAL", "500")
	t.Setenv("AURA_MUSIC_DEVICE_ID", "env-device")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.Backend.URL != "http://override:9999" {
		t.Errorf("Backend.URL = %q, want env override", cfg.Backend.URL)
	}
	if cfg.Detector.Interval != 500 {
		t.Errorf("Detector.Interval = %d, want 500", cfg.Detector.Interval)
	}
	if cfg.Music.DeviceID != "env-device" {
		t.Errorf("Music.DeviceID = %q, want %q", cfg.Music.DeviceID, "env-device")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"missing backend url", func(c *Config) { c.Backend.URL = "" }, true},
		{"bad backend scheme", func(c *Config) { c.Backend.URL = "ftp://x" }, true},
		{"bad broadcast scheme", func(c *Config) { c.Broadcast.URL = "http://x" }, true},
		{"ws broadcast ok", func(c *Config) { c.Broadcast.URL = "ws://x:5000/ws" }, false},
		{"bad detector mode", func(c *Config) { c.Detector.Mode = "turbo" }, true},
		{"negative interval", func(c *Config) { c.Detector.Interval = -1 }, true},
		{"bad camera url", func(c *Config) { c.Camera.StreamURL = "rtsp://cam" }, true},
		{"bad theme", func(c *Config) { c.TUI.Theme = "neon" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := Default()
	cfg.Backend.URL = "http://saved:5000"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Backend.URL != "http://saved:5000" {
		t.Errorf("Backend.URL = %q, want saved value", loaded.Backend.URL)
	}
}
