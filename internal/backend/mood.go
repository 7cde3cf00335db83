package backend

import (
	"context"
	"encoding/base64"
	"strconv"

	"github.com/aurafm/aura/internal/core"
)

// Detect classifies a JPEG frame via the backend's mood endpoint. The
// frame is sent as a data URI; the backend strips everything before the
// comma, so a bare base64 string would be rejected.
func (c *Client) Detect(ctx context.Context, frame []byte) (DetectResult, error) {
	body := map[string]interface{}{
		"image": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(frame),
	}

	var resp DetectResult
	if err := c.Post(ctx, "/api/mood/detect", body, &resp); err != nil {
		return DetectResult{}, err
	}
	return resp, nil
}

// ResetDetector clears the backend detector's smoothing history.
func (c *Client) ResetDetector(ctx context.Context) error {
	return c.Post(ctx, "/api/mood/reset", map[string]interface{}{}, nil)
}

// LogMood records a detection in the backend's mood log.
func (c *Client) LogMood(ctx context.Context, userID int, mood core.Mood, confidence float64) error {
	body := map[string]interface{}{
		"user_id":    userID,
		"mood":       string(mood),
		"confidence": confidence,
	}
	return c.Post(ctx, "/api/mood/log", body, nil)
}

// MoodHistory fetches the most recent logged detections.
func (c *Client) MoodHistory(ctx context.Context, userID, limit int) ([]MoodLogEntry, error) {
	path := BuildURL("/api/mood/history", map[string]string{
		"user_id": strconv.Itoa(userID),
		"limit":   strconv.Itoa(limit),
	})

	var resp MoodHistoryResponse
	if err := c.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}
