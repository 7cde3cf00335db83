package backend

import (
	"context"
	"fmt"

	"github.com/aurafm/aura/internal/core"
)

// DefaultRecommendLimit is the number of tracks requested per mood change.
const DefaultRecommendLimit = 20

// Recommend requests tracks matching a mood. An empty result is returned
// as an empty slice, not an error.
func (c *Client) Recommend(ctx context.Context, mood core.Mood, limit int) ([]core.Track, error) {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	body := map[string]interface{}{
		"mood":  string(mood),
		"limit": limit,
	}

	var resp RecommendResponse
	if err := c.Post(ctx, "/api/music/recommend", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("recommendation request was not successful")
	}

	tracks := make([]core.Track, 0, len(resp.Songs))
	for _, s := range resp.Songs {
		tracks = append(tracks, s.Track())
	}
	return tracks, nil
}

// Play issues a play command for a track. An empty deviceID lets the
// backend choose the active device.
func (c *Client) Play(ctx context.Context, trackID, deviceID string) error {
	body := map[string]interface{}{
		"track_id": trackID,
	}
	if deviceID != "" {
		body["device_id"] = deviceID
	}

	var resp CommandResponse
	if err := c.Post(ctx, "/api/music/play", body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Status: 400, Message: resp.Error}
	}
	return nil
}

// Pause pauses playback on the given device (or the active one).
func (c *Client) Pause(ctx context.Context, deviceID string) error {
	return c.command(ctx, "/api/music/pause", deviceID)
}

// Resume resumes playback on the given device (or the active one).
func (c *Client) Resume(ctx context.Context, deviceID string) error {
	return c.command(ctx, "/api/music/resume", deviceID)
}

func (c *Client) command(ctx context.Context, path, deviceID string) error {
	body := map[string]interface{}{}
	if deviceID != "" {
		body["device_id"] = deviceID
	}

	var resp CommandResponse
	if err := c.Post(ctx, path, body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Status: 400, Message: resp.Error}
	}
	return nil
}

// Current returns live playback state, or nil when nothing is loaded.
// A paused track still comes back, with IsPlaying false.
func (c *Client) Current(ctx context.Context) (*Playback, error) {
	var resp CurrentPlayback
	if err := c.Get(ctx, "/api/music/current", &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Playback == nil {
		return nil, nil
	}
	return resp.Playback, nil
}

// Sync imports the user's library into the backend catalog.
func (c *Client) Sync(ctx context.Context, limit int) (*SyncResult, error) {
	body := map[string]interface{}{
		"limit": limit,
	}

	var resp SyncResult
	if err := c.Post(ctx, "/api/music/sync", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("library sync was not successful")
	}
	return &resp, nil
}

// SyncNeeded reports whether the catalog has songs to recommend from.
func (c *Client) SyncNeeded(ctx context.Context) (*SyncStatus, error) {
	var resp SyncStatus
	if err := c.Get(ctx, "/api/music/sync/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePlaylist saves a mood playlist on the user's account.
func (c *Client) CreatePlaylist(ctx context.Context, userID int, mood core.Mood, trackIDs []string) (*PlaylistResult, error) {
	body := map[string]interface{}{
		"user_id":   userID,
		"mood":      string(mood),
		"track_ids": trackIDs,
	}

	var resp PlaylistResult
	if err := c.Post(ctx, "/api/music/playlist/create", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Status: 400, Message: resp.Error}
	}
	return &resp, nil
}
