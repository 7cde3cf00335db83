package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrSourceUnavailable    = errors.New("no camera source available")
	ErrNoSongsForMood       = errors.New("no songs found for mood")
	ErrRecommendationFailed = errors.New("failed to load recommendations")
	ErrPlaybackFailed       = errors.New("playback failed")
	ErrEmptyPlaylist        = errors.New("playlist is empty")
	ErrChannelUnavailable   = errors.New("broadcast channel unavailable")
	ErrBackendUnreachable   = errors.New("backend unreachable")
	ErrNotConfigured        = errors.New("backend not configured")
)

// AuraError wraps an error with a user-friendly suggestion.
type AuraError struct {
	Err        error
	Suggestion string
}

func (e *AuraError) Error() string {
	return e.Err.Error()
}

func (e *AuraError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &AuraError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already an AuraError with suggestion
	var auraErr *AuraError
	if errors.As(err, &auraErr) && auraErr.Suggestion != "" {
		return auraErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Camera errors
	if errors.Is(err, ErrSourceUnavailable) || strings.Contains(errStr, "camera") {
		return "Check that the camera stream URL in your config is reachable"
	}

	// Catalog errors
	if errors.Is(err, ErrNoSongsForMood) {
		return "Run 'aura sync' to import your library before detecting moods"
	}
	if errors.Is(err, ErrRecommendationFailed) {
		return "The catalog backend could not serve recommendations. It will retry on the next mood change"
	}

	// Playback errors
	if errors.Is(err, ErrPlaybackFailed) || strings.Contains(errStr, "no active device") {
		return "Make sure your player app is open and active on a device"
	}
	if errors.Is(err, ErrEmptyPlaylist) {
		return "Start mood detection or run 'aura sync' to build a playlist"
	}

	// Config errors
	if errors.Is(err, ErrNotConfigured) || strings.Contains(errStr, "config") {
		return "Run 'aura init' to set up your configuration"
	}

	// Network errors
	if errors.Is(err, ErrBackendUnreachable) ||
		strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "timeout") {
		return "Check that the backend is running and the URL in your config is correct"
	}

	// Server errors
	if strings.Contains(errStr, "500") || strings.Contains(errStr, "server error") {
		return "The backend is having issues. Try again in a moment"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
