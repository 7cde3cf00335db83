// Package wizard provides the interactive first-run setup flow.
package wizard

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/aurafm/aura/internal/config"
)

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run walks the user through initial configuration, mutating cfg in place.
// Returns false when the user backs out without confirming.
func Run(cfg *config.Config) (bool, error) {
	if !IsTerminal() {
		return false, fmt.Errorf("setup requires a terminal; edit the config file directly instead")
	}

	backendURL := cfg.Backend.URL
	if backendURL == "" {
		backendURL = "http://localhost:5000"
	}
	cameraKind := "snapshot"
	cameraURL := cfg.Camera.SnapshotURL
	if cfg.Camera.StreamURL != "" {
		cameraKind = "stream"
		cameraURL = cfg.Camera.StreamURL
	}
	mode := cfg.Detector.Mode
	if mode == "" {
		mode = "fast"
	}
	limit := strconv.Itoa(cfg.Music.Limit)
	if cfg.Music.Limit == 0 {
		limit = "20"
	}
	broadcastURL := cfg.Broadcast.URL
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("The catalog backend that serves recommendations and playback").
				Value(&backendURL).
				Validate(validateHTTP),

			huh.NewSelect[string]().
				Title("Camera source").
				Description("How frames reach the mood detector").
				Options(
					huh.NewOption("MJPEG stream (continuous)", "stream"),
					huh.NewOption("Snapshot endpoint (one still per request)", "snapshot"),
				).
				Value(&cameraKind),

			huh.NewInput().
				Title("Camera URL").
				Placeholder("http://localhost:8080/video").
				Value(&cameraURL).
				Validate(validateHTTP),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Detection pace").
				Options(
					huh.NewOption("Fast (about 10 samples per second)", "fast"),
					huh.NewOption("Polled (one sample every 2 seconds)", "polled"),
				).
				Value(&mode),

			huh.NewInput().
				Title("Recommendations per mood change").
				Value(&limit).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > 100 {
						return fmt.Errorf("enter a number between 1 and 100")
					}
					return nil
				}),

			huh.NewInput().
				Title("Broadcast channel URL (optional)").
				Description("ws:// endpoint mirroring mood events; leave blank to disable").
				Value(&broadcastURL).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					if !strings.HasPrefix(s, "ws://") && !strings.HasPrefix(s, "wss://") {
						return fmt.Errorf("must start with ws:// or wss://")
					}
					return nil
				}),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Save configuration?").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}
	if !confirmed {
		return false, nil
	}

	cfg.Backend.URL = strings.TrimSpace(backendURL)
	if cameraKind == "stream" {
		cfg.Camera.StreamURL = strings.TrimSpace(cameraURL)
		cfg.Camera.SnapshotURL = ""
	} else {
		cfg.Camera.SnapshotURL = strings.TrimSpace(cameraURL)
		cfg.Camera.StreamURL = ""
	}
	cfg.Detector.Mode = mode
	cfg.Music.Limit, _ = strconv.Atoi(strings.TrimSpace(limit))
	cfg.Broadcast.URL = strings.TrimSpace(broadcastURL)
	cfg.ApplyDefaults()

	return true, nil
}

func validateHTTP(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("required")
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("must start with http:// or https://")
	}
	return nil
}
