package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWithSuggestion(t *testing.T) {
	base := errors.New("something broke")
	wrapped := WithSuggestion(base, "try turning it off and on again")

	if wrapped.Error() != "something broke" {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), "something broke")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match the base error with errors.Is")
	}
	if got := GetSuggestion(wrapped); got != "try turning it off and on again" {
		t.Errorf("GetSuggestion() = %q, want the wrapped suggestion", got)
	}
}

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string // substring expected in suggestion
	}{
		{"nil error", nil, ""},
		{"source unavailable", ErrSourceUnavailable, "camera stream URL"},
		{"no songs", ErrNoSongsForMood, "aura sync"},
		{"recommendation failed", ErrRecommendationFailed, "next mood change"},
		{"playback failed", ErrPlaybackFailed, "player app"},
		{"empty playlist", ErrEmptyPlaylist, "playlist"},
		{"not configured", ErrNotConfigured, "aura init"},
		{"backend unreachable", ErrBackendUnreachable, "backend is running"},
		{"wrapped sentinel", fmt.Errorf("play track: %w", ErrPlaybackFailed), "player app"},
		{"connection refused string", errors.New("dial tcp: connection refused"), "backend is running"},
		{"unknown error", errors.New("mystery"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSuggestion(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("GetSuggestion() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("GetSuggestion() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	got := Format(ErrPlaybackFailed)
	if !strings.HasPrefix(got, "Error: playback failed") {
		t.Errorf("Format() = %q, want prefix %q", got, "Error: playback failed")
	}
	if !strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q, want an embedded suggestion", got)
	}

	plain := Format(errors.New("mystery"))
	if plain != "Error: mystery" {
		t.Errorf("Format() = %q, want %q", plain, "Error: mystery")
	}
}
