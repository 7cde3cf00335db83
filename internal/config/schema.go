package config

// Config is the root configuration structure.
type Config struct {
	Backend   BackendConfig   `toml:"backend"`
	Broadcast BroadcastConfig `toml:"broadcast"`
	Camera    CameraConfig    `toml:"camera"`
	Detector  DetectorConfig  `toml:"detector"`
	Music     MusicConfig     `toml:"music"`
	TUI       TUIConfig       `toml:"tui"`
	Log       LogConfig       `toml:"log"`
}

// BackendConfig holds catalog/playback backend settings.
type BackendConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// BroadcastConfig holds the optional broadcast channel settings.
type BroadcastConfig struct {
	URL string `toml:"url"` // ws:// or wss://; empty disables broadcasting
}

// CameraConfig holds frame source settings. StreamURL (multipart MJPEG)
// wins over SnapshotURL (one still per request) when both are set.
type CameraConfig struct {
	StreamURL   string `toml:"stream_url"`
	SnapshotURL string `toml:"snapshot_url"`
}

// DetectorConfig holds sampler loop settings.
type DetectorConfig struct {
	Mode     string `toml:"mode"`     // "fast" (100ms) or "polled" (2000ms)
	Interval int    `toml:"interval"` // milliseconds; overrides mode when set
	Window   int    `toml:"window"`   // majority-vote smoothing window
}

// MusicConfig holds recommendation and playback settings.
type MusicConfig struct {
	Limit    int    `toml:"limit"`     // recommendations per mood change
	DeviceID string `toml:"device_id"` // empty lets the backend pick the active device
	UserID   int    `toml:"user_id"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"` // milliseconds
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
