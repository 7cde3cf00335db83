package config

// Detection interval presets in milliseconds.
const (
	FastIntervalMS   = 100
	PolledIntervalMS = 2000
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:     "http://localhost:5000",
			Timeout: 10,
		},
		Detector: DetectorConfig{
			Mode:   "fast",
			Window: 3,
		},
		Music: MusicConfig{
			Limit:  20,
			UserID: 1,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Backend
	if c.Backend.URL == "" {
		c.Backend.URL = d.Backend.URL
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = d.Backend.Timeout
	}

	// Detector
	if c.Detector.Mode == "" {
		c.Detector.Mode = d.Detector.Mode
	}
	if c.Detector.Window == 0 {
		c.Detector.Window = d.Detector.Window
	}

	// Music
	if c.Music.Limit == 0 {
		c.Music.Limit = d.Music.Limit
	}
	if c.Music.UserID == 0 {
		c.Music.UserID = d.Music.UserID
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// DetectionIntervalMS resolves the effective detection interval.
// An explicit interval wins over the mode preset.
func (c *Config) DetectionIntervalMS() int {
	if c.Detector.Interval > 0 {
		return c.Detector.Interval
	}
	if c.Detector.Mode == "polled" {
		return PolledIntervalMS
	}
	return FastIntervalMS
}
