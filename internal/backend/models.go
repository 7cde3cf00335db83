package backend

import "github.com/aurafm/aura/internal/core"

// Song is the wire representation of a catalog track.
type Song struct {
	SpotifySongID string   `json:"spotify_song_id"`
	Title         string   `json:"title"`
	Artist        string   `json:"artist"`
	Album         string   `json:"album,omitempty"`
	Valence       *float64 `json:"valence,omitempty"`
	Energy        *float64 `json:"energy,omitempty"`
	Tempo         *float64 `json:"tempo,omitempty"`
}

// Track converts a wire song to the core track type.
func (s Song) Track() core.Track {
	return core.Track{
		ID:      s.SpotifySongID,
		Title:   s.Title,
		Artist:  s.Artist,
		Album:   s.Album,
		Valence: s.Valence,
	}
}

// RecommendResponse is the payload of POST /api/music/recommend.
type RecommendResponse struct {
	Success bool   `json:"success"`
	Mood    string `json:"mood"`
	Songs   []Song `json:"songs"`
	Count   int    `json:"count"`
}

// CommandResponse is the payload of playback command endpoints.
type CommandResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SyncResult is the payload of POST /api/music/sync.
type SyncResult struct {
	Success        bool `json:"success"`
	TotalProcessed int  `json:"total_processed"`
	WithFeatures   int  `json:"with_features"`
}

// SyncStatus is the payload of GET /api/music/sync/status.
type SyncStatus struct {
	Success   bool `json:"success"`
	NeedsSync bool `json:"needs_sync"`
	Synced    bool `json:"synced"`
	SongCount int  `json:"song_count"`
}

// CurrentPlayback is the payload of GET /api/music/current.
type CurrentPlayback struct {
	Success  bool      `json:"success"`
	Playback *Playback `json:"playback,omitempty"`
}

// Playback is live player state. A present track with IsPlaying false
// means playback is paused, not stopped.
type Playback struct {
	IsPlaying bool          `json:"is_playing"`
	Track     PlaybackTrack `json:"track"`
}

// PlaybackTrack is the track nested in live playback state. The player
// reports plain ids and progress, not catalog rows, so its keys differ
// from Song.
type PlaybackTrack struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	AlbumArt   string `json:"album_art,omitempty"`
	DurationMS int    `json:"duration_ms"`
	ProgressMS int    `json:"progress_ms"`
}

// CoreTrack converts live playback track data to the core track type.
func (t PlaybackTrack) CoreTrack() core.Track {
	return core.Track{
		ID:     t.ID,
		Title:  t.Title,
		Artist: t.Artist,
		Album:  t.Album,
	}
}

// PlaylistResult is the payload of POST /api/music/playlist/create.
type PlaylistResult struct {
	Success    bool   `json:"success"`
	PlaylistID string `json:"playlist_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DetectResult is the payload of POST /api/mood/detect.
type DetectResult struct {
	Detected   bool    `json:"detected"`
	Mood       string  `json:"mood,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// MoodLogEntry is one row of GET /api/mood/history.
type MoodLogEntry struct {
	Mood       string  `json:"detected_mood"`
	Confidence float64 `json:"confidence_score"`
	Timestamp  string  `json:"timestamp"`
}

// MoodHistoryResponse is the payload of GET /api/mood/history.
type MoodHistoryResponse struct {
	Success bool           `json:"success"`
	History []MoodLogEntry `json:"history"`
}
