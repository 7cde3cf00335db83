package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aurafm/aura/internal/core"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		params map[string]string
		want   string
	}{
		{
			name:   "no params",
			path:   "/api/music/current",
			params: nil,
			want:   "/api/music/current",
		},
		{
			name:   "single param",
			path:   "/api/mood/history",
			params: map[string]string{"limit": "10"},
			want:   "/api/mood/history?limit=10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildURL(tt.path, tt.params)
			if got != tt.want {
				t.Errorf("BuildURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError(t *testing.T) {
	err := &APIError{Status: 400, Message: "track_id is required"}

	want := "backend API error 400: track_id is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsNoActiveDevice(t *testing.T) {
	if !IsNoActiveDevice(&APIError{Status: 404, Message: "not found"}) {
		t.Error("status 404 should count as no active device")
	}
	if !IsNoActiveDevice(&APIError{Status: 400, Message: "No active device found"}) {
		t.Error("message mentioning no active device should match")
	}
	if IsNoActiveDevice(errors.New("plain error")) {
		t.Error("plain errors should not match")
	}
}

func TestRecommend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/music/recommend" {
			t.Errorf("path = %q, want /api/music/recommend", r.URL.Path)
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["mood"] != "happy" {
			t.Errorf("mood = %v, want happy", body["mood"])
		}
		if body["limit"] != float64(20) {
			t.Errorf("limit = %v, want 20", body["limit"])
		}

		_ = json.NewEncoder(w).Encode(RecommendResponse{
			Success: true,
			Mood:    "happy",
			Songs: []Song{
				{SpotifySongID: "s1", Title: "Song One", Artist: "Artist A"},
				{SpotifySongID: "s2", Title: "Song Two", Artist: "Artist B", Album: "Album"},
			},
			Count: 2,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	tracks, err := c.Recommend(context.Background(), core.MoodHappy, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("len(tracks) = %d, want 2", len(tracks))
	}
	if tracks[0].ID != "s1" {
		t.Errorf("tracks[0].ID = %q, want %q", tracks[0].ID, "s1")
	}
	if tracks[1].Album != "Album" {
		t.Errorf("tracks[1].Album = %q, want %q", tracks[1].Album, "Album")
	}
}

func TestRecommendEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(RecommendResponse{Success: true, Mood: "sad"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	tracks, err := c.Recommend(context.Background(), core.MoodSad, 20)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("len(tracks) = %d, want 0", len(tracks))
	}
}

func TestPlay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["track_id"] != "t1" {
			t.Errorf("track_id = %v, want t1", body["track_id"])
		}
		if body["device_id"] != "d1" {
			t.Errorf("device_id = %v, want d1", body["device_id"])
		}
		_ = json.NewEncoder(w).Encode(CommandResponse{Success: true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Play(context.Background(), "t1", "d1"); err != nil {
		t.Errorf("Play() error = %v", err)
	}
}

func TestPlayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "No active device found"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Play(context.Background(), "t1", "")
	if err == nil {
		t.Fatal("Play() error = nil, want failure")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != 400 {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if !strings.Contains(apiErr.Message, "No active device") {
		t.Errorf("Message = %q, want device error", apiErr.Message)
	}
}

func TestServerErrorRetries(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, `{"error":"flaky"}`, http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(CommandResponse{Success: true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Pause(context.Background(), ""); err != nil {
		t.Errorf("Pause() error = %v after retries", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestClientErrorDoesNotRetry(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, `{"error":"track_id is required"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Play(context.Background(), "", ""); err == nil {
		t.Error("Play() error = nil, want 400")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (4xx must not retry)", attempts)
	}
}

func TestSync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/music/sync":
			_ = json.NewEncoder(w).Encode(SyncResult{Success: true, TotalProcessed: 42, WithFeatures: 40})
		case "/api/music/sync/status":
			_ = json.NewEncoder(w).Encode(SyncStatus{Success: true, Synced: true, SongCount: 42})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	result, err := c.Sync(context.Background(), 50)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if result.TotalProcessed != 42 {
		t.Errorf("TotalProcessed = %d, want 42", result.TotalProcessed)
	}
	if result.WithFeatures != 40 {
		t.Errorf("WithFeatures = %d, want 40", result.WithFeatures)
	}

	status, err := c.SyncNeeded(context.Background())
	if err != nil {
		t.Fatalf("SyncNeeded() error = %v", err)
	}
	if !status.Synced || status.SongCount != 42 {
		t.Errorf("SyncNeeded() = %+v, want synced with 42 songs", status)
	}
}

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(CurrentPlayback{
			Success: true,
			Playback: &Playback{
				IsPlaying: false,
				Track: PlaybackTrack{
					ID:         "t1",
					Title:      "Song One",
					Artist:     "Artist A",
					DurationMS: 180000,
					ProgressMS: 42000,
				},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	pb, err := c.Current(context.Background())
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if pb == nil {
		t.Fatal("Current() = nil, want the paused track")
	}
	if pb.IsPlaying {
		t.Error("IsPlaying = true, want false for a paused track")
	}
	if pb.Track.ID != "t1" || pb.Track.Title != "Song One" {
		t.Errorf("Track = %+v, want t1 / Song One", pb.Track)
	}

	track := pb.Track.CoreTrack()
	if track.ID != "t1" || track.Artist != "Artist A" {
		t.Errorf("CoreTrack() = %+v, want fields copied", track)
	}
}

func TestCurrentNothingLoaded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(CurrentPlayback{Success: false})
	}))
	defer srv.Close()

	c := New(srv.URL)
	pb, err := c.Current(context.Background())
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if pb != nil {
		t.Errorf("Current() = %+v, want nil when nothing is loaded", pb)
	}
}

func TestDetect(t *testing.T) {
	frame := []byte{0xff, 0xd8, 0xff}

	// The backend parses the image as a data URI: it splits on the comma
	// and decodes only what follows, so a bare base64 string is rejected.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/mood/detect" {
			t.Errorf("path = %q, want /api/mood/detect", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		parts := strings.SplitN(body["image"], ",", 2)
		if len(parts) != 2 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Could not detect mood"})
			return
		}
		if parts[0] != "data:image/jpeg;base64" {
			t.Errorf("image prefix = %q, want data:image/jpeg;base64", parts[0])
		}
		decoded, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			t.Errorf("image payload is not valid base64: %v", err)
		}
		if !bytes.Equal(decoded, frame) {
			t.Errorf("decoded frame = %x, want %x", decoded, frame)
		}
		_ = json.NewEncoder(w).Encode(DetectResult{Detected: true, Mood: "angry", Confidence: 0.75})
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.Detect(context.Background(), frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if !result.Detected || result.Mood != "angry" || result.Confidence != 0.75 {
		t.Errorf("Detect() = %+v, want detected angry at 0.75", result)
	}
}

func TestMoodHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q, want 10", got)
		}
		_ = json.NewEncoder(w).Encode(MoodHistoryResponse{
			Success: true,
			History: []MoodLogEntry{{Mood: "happy", Confidence: 0.9}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	history, err := c.MoodHistory(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("MoodHistory() error = %v", err)
	}
	if len(history) != 1 || history[0].Mood != "happy" {
		t.Errorf("MoodHistory() = %+v, want one happy entry", history)
	}
}

func TestSongTrackConversion(t *testing.T) {
	v := 0.8
	s := Song{SpotifySongID: "id", Title: "T", Artist: "A", Album: "B", Valence: &v}
	track := s.Track()

	if track.ID != "id" || track.Title != "T" || track.Artist != "A" || track.Album != "B" {
		t.Errorf("Track() = %+v, want fields copied", track)
	}
	if track.Valence == nil || *track.Valence != 0.8 {
		t.Errorf("Valence = %v, want 0.8", track.Valence)
	}
}
