package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Backend.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("backend: %w", err))
	}
	if err := c.Broadcast.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("broadcast: %w", err))
	}
	if err := c.Camera.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}
	if err := c.Detector.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("detector: %w", err))
	}
	if err := c.Music.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("music: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks BackendConfig for errors.
func (c *BackendConfig) Validate() error {
	if c.URL == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url scheme: %s (must be http or https)", u.Scheme)
	}
	if c.Timeout < 0 {
		return errors.New("timeout must be non-negative")
	}
	return nil
}

// Validate checks BroadcastConfig for errors.
func (c *BroadcastConfig) Validate() error {
	if c.URL == "" {
		return nil // broadcasting is optional
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("invalid url scheme: %s (must be ws or wss)", u.Scheme)
	}
	return nil
}

// Validate checks CameraConfig for errors.
func (c *CameraConfig) Validate() error {
	for _, s := range []string{c.StreamURL, c.SnapshotURL} {
		if s == "" {
			continue
		}
		if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
			return fmt.Errorf("invalid camera url: %s (must be http or https)", s)
		}
	}
	return nil
}

// Validate checks DetectorConfig for errors.
func (c *DetectorConfig) Validate() error {
	switch c.Mode {
	case "", "fast", "polled":
		// valid
	default:
		return fmt.Errorf("invalid mode: %s (must be fast or polled)", c.Mode)
	}
	if c.Interval < 0 {
		return errors.New("interval must be non-negative")
	}
	if c.Window < 0 {
		return errors.New("window must be non-negative")
	}
	return nil
}

// Validate checks MusicConfig for errors.
func (c *MusicConfig) Validate() error {
	if c.Limit < 0 {
		return errors.New("limit must be non-negative")
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	if c.RefreshInterval < 0 {
		return errors.New("refresh_interval must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
